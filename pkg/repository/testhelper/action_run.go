package testhelper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

// TestActionRunRepository runs all test cases for ActionRunRepository. Test data uses unique owner
// names so that the suite can run against a shared database.
func TestActionRunRepository(t *testing.T, repo interfaces.ActionRunRepository) {
	t.Run("PutAndList", func(t *testing.T) {
		TestActionRunPutAndList(t, repo)
	})
	t.Run("Duplicate", func(t *testing.T) {
		TestActionRunDuplicate(t, repo)
	})
	t.Run("InvalidInput", func(t *testing.T) {
		TestActionRunInvalidInput(t, repo)
	})
	t.Run("ListPullRequests", func(t *testing.T) {
		TestListPullRequests(t, repo)
	})
}

func newOwner() string {
	return fmt.Sprintf("owner-%s", uuid.New().String()[:8])
}

func filterRuns(runs []*model.ActionRun, owner string) []*model.ActionRun {
	var result []*model.ActionRun
	for _, run := range runs {
		if run.Owner == owner {
			result = append(result, run)
		}
	}
	return result
}

func TestActionRunPutAndList(t *testing.T, repo interfaces.ActionRunRepository) {
	ctx := context.Background()
	owner := newOwner()
	now := time.Now().UTC().Truncate(time.Second)

	run1 := &model.ActionRun{Owner: owner, Repo: "app", PullNumber: 10, RunID: 1001, CreatedAt: now}
	run2 := &model.ActionRun{Owner: owner, Repo: "app", PullNumber: 10, RunID: 1002, CreatedAt: now.Add(time.Minute)}
	gt.NoError(t, repo.PutActionRun(ctx, run1))
	gt.NoError(t, repo.PutActionRun(ctx, run2))

	runs, err := repo.ListActionRuns(ctx)
	gt.NoError(t, err)
	runs = filterRuns(runs, owner)
	gt.A(t, runs).Length(2)

	// Most recent first
	gt.V(t, runs[0].RunID).Equal(types.RunID(1002))
	gt.V(t, runs[0].Repo).Equal("app")
	gt.V(t, runs[0].PullNumber).Equal(types.PullNumber(10))
	gt.True(t, runs[0].CreatedAt.Equal(run2.CreatedAt))
	gt.V(t, runs[1].RunID).Equal(types.RunID(1001))
}

func TestActionRunDuplicate(t *testing.T, repo interfaces.ActionRunRepository) {
	ctx := context.Background()
	owner := newOwner()
	now := time.Now().UTC().Truncate(time.Second)

	run := &model.ActionRun{Owner: owner, Repo: "app", PullNumber: 3, RunID: 42, CreatedAt: now}
	gt.NoError(t, repo.PutActionRun(ctx, run))

	dup := &model.ActionRun{Owner: owner, Repo: "app", PullNumber: 3, RunID: 42, CreatedAt: now.Add(time.Hour)}
	err := repo.PutActionRun(ctx, dup)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrDuplicate))

	// Same run for another pull request is a different record
	other := &model.ActionRun{Owner: owner, Repo: "app", PullNumber: 4, RunID: 42, CreatedAt: now}
	gt.NoError(t, repo.PutActionRun(ctx, other))

	runs, err := repo.ListActionRuns(ctx)
	gt.NoError(t, err)
	gt.A(t, filterRuns(runs, owner)).Length(2)
}

func TestActionRunInvalidInput(t *testing.T, repo interfaces.ActionRunRepository) {
	ctx := context.Background()

	testCases := []struct {
		name string
		run  *model.ActionRun
	}{
		{name: "empty owner", run: &model.ActionRun{Repo: "app", PullNumber: 1, RunID: 1}},
		{name: "invalid repo", run: &model.ActionRun{Owner: newOwner(), Repo: "a/b", PullNumber: 1, RunID: 1}},
		{name: "zero pull number", run: &model.ActionRun{Owner: newOwner(), Repo: "app", RunID: 1}},
		{name: "zero run ID", run: &model.ActionRun{Owner: newOwner(), Repo: "app", PullNumber: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.PutActionRun(ctx, tc.run)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrValidationFailed))
		})
	}
}

func TestListPullRequests(t *testing.T, repo interfaces.ActionRunRepository) {
	ctx := context.Background()
	owner := newOwner()
	// Future timestamps keep test records on top of a shared database
	base := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)

	records := []*model.ActionRun{
		{Owner: owner, Repo: "app", PullNumber: 1, RunID: 1, CreatedAt: base},
		{Owner: owner, Repo: "app", PullNumber: 2, RunID: 2, CreatedAt: base.Add(1 * time.Minute)},
		{Owner: owner, Repo: "lib", PullNumber: 1, RunID: 3, CreatedAt: base.Add(2 * time.Minute)},
		// New run of app#1 makes it the most recent pull request
		{Owner: owner, Repo: "app", PullNumber: 1, RunID: 4, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, run := range records {
		gt.NoError(t, repo.PutActionRun(ctx, run))
	}

	entries, err := repo.ListPullRequests(ctx, 1000)
	gt.NoError(t, err)

	var ours []*model.PullRequestEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Value, owner+"/") {
			ours = append(ours, entry)
		}
	}
	gt.A(t, ours).Length(3)
	gt.V(t, ours[0].Value).Equal(owner + "/app/1")
	gt.V(t, ours[0].Name).Equal(owner + "/app#1")
	gt.V(t, ours[1].Value).Equal(owner + "/lib/1")
	gt.V(t, ours[2].Value).Equal(owner + "/app/2")

	limited, err := repo.ListPullRequests(ctx, 2)
	gt.NoError(t, err)
	gt.True(t, len(limited) <= 2)
}
