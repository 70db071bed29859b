package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// pullRequestListLimit is number of pull requests in the listing for selector of browser client
const pullRequestListLimit = 50

// RecordActionRun stores the workflow run observed for the pull request. Recording the same run
// again returns types.ErrDuplicate.
func (x *UseCase) RecordActionRun(ctx context.Context, run *model.ActionRun) error {
	if err := run.Validate(); err != nil {
		return err
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = x.clients.Now().UTC()
	}

	return x.clients.ActionRunRepository().PutActionRun(ctx, run)
}

func (x *UseCase) ListActionRuns(ctx context.Context) ([]*model.ActionRun, error) {
	return x.clients.ActionRunRepository().ListActionRuns(ctx)
}

func (x *UseCase) ListPullRequests(ctx context.Context) ([]*model.PullRequestEntry, error) {
	return x.clients.ActionRunRepository().ListPullRequests(ctx, pullRequestListLimit)
}

// recordRuns is bookkeeping of discovered workflow runs. Failure is logged and never stops the
// pipeline.
func (x *UseCase) recordRuns(ctx context.Context, input *model.PullRequestInput, runs []*model.WorkflowRun) {
	now := x.clients.Now().UTC()
	var recorded int

	for _, run := range runs {
		err := x.RecordActionRun(ctx, &model.ActionRun{
			Owner:      input.Owner,
			Repo:       input.Repo,
			PullNumber: input.Number,
			RunID:      run.ID,
			CreatedAt:  now,
		})
		switch {
		case err == nil:
			recorded++
		case errors.Is(err, types.ErrDuplicate):
		default:
			logging.From(ctx).Warn("failed to record action run", slog.Any("run_id", run.ID), slog.Any("error", err))
		}
	}

	logging.From(ctx).Debug("action runs recorded", slog.Int("new", recorded), slog.Int("total", len(runs)))
}
