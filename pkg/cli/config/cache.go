package config

import (
	"log/slog"

	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/repository/buntdb"
	"github.com/m-mizutani/pytiming/pkg/repository/memory"
	"github.com/m-mizutani/pytiming/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type Cache struct {
	path string
}

func (x *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-path",
			Usage:       "Path of durable artifact archive cache file. In-memory cache is used if not set",
			Category:    "Cache",
			Destination: &x.path,
			Sources:     cli.EnvVars("PYTIMING_CACHE_PATH"),
		},
	}
}

func (x *Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
	)
}

// NewRepository returns archive repository and its cleanup function
func (x *Cache) NewRepository() (interfaces.ArchiveRepository, func(), error) {
	if x.path == "" {
		return memory.NewArchive(), func() {}, nil
	}

	repo, err := buntdb.New(x.path)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { safe.Close(repo) }, nil
}
