// Package memory provides in-memory repositories. Data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/repository"
)

type Archive struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ interfaces.ArchiveRepository = (*Archive)(nil)

func NewArchive() *Archive {
	return &Archive{
		data: make(map[string][]byte),
	}
}

func (x *Archive) GetArchive(ctx context.Context, key string) ([]byte, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	data, ok := x.data[key]
	if !ok {
		return nil, goerr.Wrap(repository.ErrNotFound, "archive not found", goerr.V("key", key))
	}
	return data, nil
}

func (x *Archive) PutArchive(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "archive key is empty")
	}

	copied := make([]byte, len(data))
	copy(copied, data)

	x.mu.Lock()
	defer x.mu.Unlock()
	x.data[key] = copied
	return nil
}

type actionRunKey struct {
	owner string
	repo  string
	pull  types.PullNumber
	runID types.RunID
}

type ActionRun struct {
	mu   sync.RWMutex
	runs map[actionRunKey]*model.ActionRun
}

var _ interfaces.ActionRunRepository = (*ActionRun)(nil)

func NewActionRun() *ActionRun {
	return &ActionRun{
		runs: make(map[actionRunKey]*model.ActionRun),
	}
}

func (x *ActionRun) PutActionRun(ctx context.Context, run *model.ActionRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	key := actionRunKey{owner: run.Owner, repo: run.Repo, pull: run.PullNumber, runID: run.RunID}

	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.runs[key]; exists {
		return goerr.Wrap(types.ErrDuplicate, "action run already recorded",
			goerr.V("owner", run.Owner),
			goerr.V("repo", run.Repo),
			goerr.V("pull_number", run.PullNumber),
			goerr.V("run_id", run.RunID),
		)
	}

	copied := *run
	x.runs[key] = &copied
	return nil
}

func (x *ActionRun) ListActionRuns(ctx context.Context) ([]*model.ActionRun, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	runs := make([]*model.ActionRun, 0, len(x.runs))
	for _, run := range x.runs {
		copied := *run
		runs = append(runs, &copied)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].RunID > runs[j].RunID
	})

	return runs, nil
}

func (x *ActionRun) ListPullRequests(ctx context.Context, limit int) ([]*model.PullRequestEntry, error) {
	if limit <= 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "limit must be positive", goerr.V("limit", limit))
	}

	runs, err := x.ListActionRuns(ctx)
	if err != nil {
		return nil, err
	}

	// runs are sorted by created_at desc, so first appearance is the latest one
	seen := make(map[string]struct{})
	entries := []*model.PullRequestEntry{}
	for _, run := range runs {
		entry := model.NewPullRequestEntry(run.Owner, run.Repo, run.PullNumber)
		if _, ok := seen[entry.Value]; ok {
			continue
		}
		seen[entry.Value] = struct{}{}
		entries = append(entries, entry)

		if len(entries) >= limit {
			break
		}
	}

	return entries, nil
}
