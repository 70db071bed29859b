package rdb_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/repository/rdb"
	"github.com/m-mizutani/pytiming/pkg/repository/testhelper"
	"github.com/m-mizutani/pytiming/pkg/utils/testutil"
)

func newSQLite(t *testing.T) *rdb.ActionRun {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", url.PathEscape(t.Name()))
	repo := gt.R1(rdb.New(context.Background(), rdb.DriverSQLite, dsn)).NoError(t)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteActionRunRepository(t *testing.T) {
	testhelper.TestActionRunRepository(t, newSQLite(t))
}

func TestPostgresActionRunRepository(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	repo := gt.R1(rdb.New(context.Background(), rdb.DriverPostgres, dsn)).NoError(t)
	t.Cleanup(func() { _ = repo.Close() })

	testhelper.TestActionRunRepository(t, repo)
}

func TestMigrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := rdb.SQLiteDSN(filepath.Join(t.TempDir(), "pytiming.db"))

	repo := gt.R1(rdb.New(ctx, rdb.DriverSQLite, dsn)).NoError(t)
	gt.NoError(t, repo.PutActionRun(ctx, &model.ActionRun{
		Owner:      "octo",
		Repo:       "app",
		PullNumber: 1,
		RunID:      100,
		CreatedAt:  time.Now(),
	}))
	gt.NoError(t, repo.Close())

	reopened := gt.R1(rdb.New(ctx, rdb.DriverSQLite, dsn)).NoError(t)
	t.Cleanup(func() { _ = reopened.Close() })

	runs := gt.R1(reopened.ListActionRuns(ctx)).NoError(t)
	gt.A(t, runs).Length(1)
	gt.V(t, runs[0].RunID).Equal(types.RunID(100))
}

func TestNewWithInvalidOption(t *testing.T) {
	ctx := context.Background()

	_, err := rdb.New(ctx, rdb.Driver("mysql"), "dsn")
	gt.True(t, errors.Is(err, types.ErrInvalidOption))

	_, err = rdb.New(ctx, rdb.DriverSQLite, "")
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func TestListPullRequestsLimit(t *testing.T) {
	ctx := context.Background()
	repo := newSQLite(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 60; i++ {
		gt.NoError(t, repo.PutActionRun(ctx, &model.ActionRun{
			Owner:      "octo",
			Repo:       "app",
			PullNumber: types.PullNumber(i),
			RunID:      types.RunID(i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries := gt.R1(repo.ListPullRequests(ctx, 50)).NoError(t)
	gt.A(t, entries).Length(50)
	gt.V(t, entries[0].Value).Equal("octo/app/60")
	gt.V(t, entries[49].Value).Equal("octo/app/11")
}
