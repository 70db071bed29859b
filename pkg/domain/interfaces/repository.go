package interfaces

import (
	"context"

	"github.com/m-mizutani/pytiming/pkg/domain/model"
)

//go:generate moq -out ../mock/repository.go -pkg mock . ArchiveRepository ActionRunRepository

// ArchiveRepository stores raw artifact archives keyed by download URL. A stored value is never
// modified nor evicted.
type ArchiveRepository interface {
	// GetArchive returns repository.ErrNotFound if the key is not stored
	GetArchive(ctx context.Context, key string) ([]byte, error)
	PutArchive(ctx context.Context, key string, data []byte) error
}

// ActionRunRepository is bookkeeping of workflow runs observed for pull requests
type ActionRunRepository interface {
	// PutActionRun returns types.ErrDuplicate if the same (owner, repo, run ID, pull number) exists
	PutActionRun(ctx context.Context, run *model.ActionRun) error
	ListActionRuns(ctx context.Context) ([]*model.ActionRun, error)
	// ListPullRequests returns distinct pull requests of recorded runs, most recent first
	ListPullRequests(ctx context.Context, limit int) ([]*model.PullRequestEntry, error)
}
