// Package rdb is bookkeeping repository on relational database. PostgreSQL and SQLite are
// supported with the same queries.
package rdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/repository"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (x Driver) Validate() error {
	switch x {
	case DriverPostgres, DriverSQLite:
		return nil
	default:
		return goerr.Wrap(types.ErrInvalidOption, "unsupported database driver", goerr.V("driver", x))
	}
}

type ActionRun struct {
	db     *sql.DB
	driver Driver
}

var _ interfaces.ActionRunRepository = (*ActionRun)(nil)

// SQLiteDSN builds DSN of a SQLite database file
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
}

// New opens database and applies schema migrations
func New(ctx context.Context, driver Driver, dsn string) (*ActionRun, error) {
	if err := driver.Validate(); err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "database DSN is empty", goerr.V("driver", driver))
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("driver", driver))
	}
	if driver == DriverSQLite {
		// SQLite allows only one writer
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping database", goerr.V("driver", driver))
	}

	if err := runMigrations(db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.From(ctx).Debug("bookkeeping database is ready", slog.String("driver", string(driver)))

	return &ActionRun{db: db, driver: driver}, nil
}

func runMigrations(db *sql.DB, driver Driver) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return goerr.Wrap(err, "failed to open migrations")
	}
	sourceDriver, err := iofs.New(sub, string(driver))
	if err != nil {
		return goerr.Wrap(err, "failed to create migration source", goerr.V("driver", driver))
	}

	var dbDriver database.Driver
	switch driver {
	case DriverPostgres:
		dbDriver, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	case DriverSQLite:
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		return goerr.Wrap(err, "failed to create migration db driver", goerr.V("driver", driver))
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(driver), dbDriver)
	if err != nil {
		return goerr.Wrap(err, "failed to create migrator", goerr.V("driver", driver))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return goerr.Wrap(err, "failed to run migrations", goerr.V("driver", driver))
	}

	return nil
}

func (x *ActionRun) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}

// rebind converts '?' placeholders to '$N' for PostgreSQL
func (x *ActionRun) rebind(query string) string {
	if x.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (x *ActionRun) PutActionRun(ctx context.Context, run *model.ActionRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	const query = `INSERT INTO action_run (organization, repo, pull_number, run_id, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (organization, repo, pull_number, run_id) DO NOTHING`

	result, err := x.db.ExecContext(ctx, x.rebind(query),
		run.Owner, run.Repo, int64(run.PullNumber), int64(run.RunID), run.CreatedAt.UnixMicro(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to insert action run",
			goerr.V("owner", run.Owner),
			goerr.V("repo", run.Repo),
			goerr.V("run_id", run.RunID),
		)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check rows affected")
	}
	if rows == 0 {
		return goerr.Wrap(types.ErrDuplicate, "action run already recorded",
			goerr.V("owner", run.Owner),
			goerr.V("repo", run.Repo),
			goerr.V("pull_number", run.PullNumber),
			goerr.V("run_id", run.RunID),
		)
	}

	return nil
}

func (x *ActionRun) ListActionRuns(ctx context.Context) ([]*model.ActionRun, error) {
	const query = `SELECT organization, repo, pull_number, run_id, created_at
FROM action_run
ORDER BY created_at DESC, run_id DESC`

	rows, err := x.db.QueryContext(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query action runs")
	}
	defer rows.Close()

	runs := []*model.ActionRun{}
	for rows.Next() {
		var (
			run       model.ActionRun
			pull      int64
			runID     int64
			createdAt int64
		)
		if err := rows.Scan(&run.Owner, &run.Repo, &pull, &runID, &createdAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan action run")
		}
		run.PullNumber = types.PullNumber(pull)
		run.RunID = types.RunID(runID)
		run.CreatedAt = time.UnixMicro(createdAt).UTC()
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate action runs")
	}

	return runs, nil
}

func (x *ActionRun) ListPullRequests(ctx context.Context, limit int) ([]*model.PullRequestEntry, error) {
	if limit <= 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "limit must be positive", goerr.V("limit", limit))
	}

	const query = `SELECT organization, repo, pull_number, MAX(created_at) AS latest
FROM action_run
GROUP BY organization, repo, pull_number
ORDER BY latest DESC, organization, repo, pull_number
LIMIT ?`

	rows, err := x.db.QueryContext(ctx, x.rebind(query), limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query pull requests")
	}
	defer rows.Close()

	entries := []*model.PullRequestEntry{}
	for rows.Next() {
		var (
			owner, repo string
			pull        int64
			latest      int64
		)
		if err := rows.Scan(&owner, &repo, &pull, &latest); err != nil {
			return nil, goerr.Wrap(err, "failed to scan pull request")
		}
		entries = append(entries, model.NewPullRequestEntry(owner, repo, types.PullNumber(pull)))
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate pull requests")
	}

	return entries, nil
}
