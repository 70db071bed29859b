package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/repository/memory"
	"github.com/m-mizutani/pytiming/pkg/repository/rdb"
	"github.com/m-mizutani/pytiming/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const driverMemory = "memory"

// Database is configuration of action run bookkeeping store
type Database struct {
	driver string
	dsn    string
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-driver",
			Usage:       "Bookkeeping database [memory|postgres|sqlite]",
			Category:    "Database",
			Destination: &x.driver,
			Sources:     cli.EnvVars("PYTIMING_DB_DRIVER"),
			Value:       driverMemory,
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "Data source name. Postgres connection string or SQLite file path",
			Category:    "Database",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("PYTIMING_DB_DSN"),
		},
	}
}

func (x *Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", x.driver),
		slog.Int("dsn.len", len(x.dsn)),
	)
}

// NewRepository returns action run repository and its cleanup function
func (x *Database) NewRepository(ctx context.Context) (interfaces.ActionRunRepository, func(), error) {
	if x.driver == "" || x.driver == driverMemory {
		return memory.NewActionRun(), func() {}, nil
	}

	driver := rdb.Driver(x.driver)
	if err := driver.Validate(); err != nil {
		return nil, nil, err
	}
	if x.dsn == "" {
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "db-dsn is required", goerr.V("driver", x.driver))
	}

	dsn := x.dsn
	if driver == rdb.DriverSQLite {
		dsn = rdb.SQLiteDSN(x.dsn)
	}

	repo, err := rdb.New(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { safe.Close(repo) }, nil
}
