// Package buntdb is durable archive cache backed by a buntdb file.
package buntdb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/repository"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
	"github.com/tidwall/buntdb"
)

const keyPrefix = "archive:"

type Archive struct {
	db *buntdb.DB
}

var _ interfaces.ArchiveRepository = (*Archive)(nil)

// New opens the archive cache file at path. The file is created if it does not exist. Every
// insert is synced to disk before PutArchive returns.
func New(path string) (*Archive, error) {
	if path == "" {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "archive cache path is empty")
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open archive cache", goerr.V("path", path))
	}

	var cfg buntdb.Config
	if err := db.ReadConfig(&cfg); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to read archive cache config", goerr.V("path", path))
	}
	cfg.SyncPolicy = buntdb.Always
	if err := db.SetConfig(cfg); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to set archive cache config", goerr.V("path", path))
	}

	logging.Default().Debug("archive cache opened", slog.String("path", path))

	return &Archive{db: db}, nil
}

func (x *Archive) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close archive cache")
	}
	return nil
}

func (x *Archive) GetArchive(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := x.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(keyPrefix + key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil, goerr.Wrap(repository.ErrNotFound, "archive not found", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get archive", goerr.V("key", key))
	}

	return []byte(value), nil
}

func (x *Archive) PutArchive(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "archive key is empty")
	}

	err := x.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(keyPrefix+key, string(data), nil)
		return err
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put archive", goerr.V("key", key), goerr.V("size", len(data)))
	}

	return nil
}
