package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

const (
	maxRunPages  = 50
	runsPerPage  = 100
	runEventType = "pull_request"
)

// collectWorkflowRuns lists pull_request workflow runs of the head commit page by page until an
// empty page. Listing stops after maxRunPages pages even if runs remain.
func collectWorkflowRuns(ctx context.Context, gh interfaces.GitHub, owner, repo, ref string, sha types.CommitSHA) ([]*model.WorkflowRun, error) {
	logger := logging.From(ctx).With(
		slog.String("owner", owner),
		slog.String("repo", repo),
		slog.String("ref", ref),
		slog.String("sha", sha.String()),
	)

	var runs []*model.WorkflowRun
	for i := 0; i < maxRunPages; i++ {
		page, err := gh.ListWorkflowRuns(ctx, &interfaces.ListWorkflowRunsInput{
			Owner:   owner,
			Repo:    repo,
			Event:   runEventType,
			HeadSHA: sha,
			Page:    i + 1,
			PerPage: runsPerPage,
		})
		if err != nil {
			return nil, err
		}

		if len(page) == 0 {
			logger.Debug("no more workflow runs", slog.Int("page", i+1), slog.Int("total", len(runs)))
			return runs, nil
		}
		runs = append(runs, page...)
	}

	logger.Warn("workflow run listing reached page limit", slog.Int("pages", maxRunPages), slog.Int("total", len(runs)))
	return runs, nil
}
