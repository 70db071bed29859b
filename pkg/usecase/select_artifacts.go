package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// artifactKeyword must be contained in name of an artifact that has pytest JSON reports
const artifactKeyword = "pytest"

// selectArtifacts returns archive download URLs of pytest artifacts produced by runs of the target
// commit. URLs are unique and in first-seen order.
func selectArtifacts(ctx context.Context, gh interfaces.GitHub, runs []*model.WorkflowRun, sha types.CommitSHA) ([]string, error) {
	logger := logging.From(ctx)

	var listURLs []string
	seenList := make(map[string]struct{})
	for _, run := range runs {
		if run.HeadSHA != sha {
			logger.Debug("skip workflow run of other commit",
				slog.Any("run_id", run.ID),
				slog.String("head_sha", run.HeadSHA.String()),
			)
			continue
		}
		if _, ok := seenList[run.ArtifactsURL]; ok {
			continue
		}
		seenList[run.ArtifactsURL] = struct{}{}
		listURLs = append(listURLs, run.ArtifactsURL)
	}

	var archives []string
	seenArchive := make(map[string]struct{})
	for i, listURL := range listURLs {
		artifacts, err := gh.ListArtifacts(ctx, listURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("artifacts listed", slog.Int("index", i), slog.Int("count", len(artifacts)))

		for _, artifact := range artifacts {
			if !strings.Contains(artifact.Name, artifactKeyword) {
				continue
			}
			if _, ok := seenArchive[artifact.ArchiveDownloadURL]; ok {
				continue
			}
			seenArchive[artifact.ArchiveDownloadURL] = struct{}{}
			archives = append(archives, artifact.ArchiveDownloadURL)
		}
	}

	logger.Info("pytest artifacts selected", slog.Int("runs", len(listURLs)), slog.Int("archives", len(archives)))
	return archives, nil
}
