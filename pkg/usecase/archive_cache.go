package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/repository"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
	"golang.org/x/sync/singleflight"
)

type ArchiveFetcher func(ctx context.Context, archiveURL string) ([]byte, error)

// ArchiveCache is content cache of artifact archives keyed by download URL. Concurrent misses of
// the same URL share one download.
type ArchiveCache struct {
	repo  interfaces.ArchiveRepository
	fetch ArchiveFetcher
	group singleflight.Group
}

func NewArchiveCache(repo interfaces.ArchiveRepository, fetch ArchiveFetcher) *ArchiveCache {
	return &ArchiveCache{
		repo:  repo,
		fetch: fetch,
	}
}

// FetchOrGet returns archive of the URL and whether it came from the cache. A downloaded archive is
// stored before it is returned. Cancelling ctx stops waiting but not the shared download.
func (x *ArchiveCache) FetchOrGet(ctx context.Context, archiveURL string) ([]byte, bool, error) {
	logger := logging.From(ctx)

	data, err := x.repo.GetArchive(ctx, archiveURL)
	if err == nil {
		logger.Debug("archive cache hit", slog.String("url", archiveURL), slog.Int("size", len(data)))
		return data, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		logger.Warn("failed to read archive cache, downloading", slog.String("url", archiveURL), slog.Any("error", err))
	}

	// The download is shared with other callers, so it must outlive cancellation of this caller.
	// It is still bounded by the HTTP client timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := x.group.DoChan(archiveURL, func() (any, error) {
		data, err := x.fetch(fetchCtx, archiveURL)
		if err != nil {
			return nil, err
		}

		if err := x.repo.PutArchive(fetchCtx, archiveURL, data); err != nil {
			logger.Warn("failed to store archive", slog.String("url", archiveURL), slog.Any("error", err))
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, goerr.Wrap(ctx.Err(), "archive download is cancelled", goerr.V("url", archiveURL))
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		data, _ := r.Val.([]byte)
		logger.Debug("archive downloaded",
			slog.String("url", archiveURL),
			slog.Int("size", len(data)),
			slog.Bool("shared", r.Shared),
		)
		return data, false, nil
	}
}
