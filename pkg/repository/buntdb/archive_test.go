package buntdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/repository/buntdb"
	"github.com/m-mizutani/pytiming/pkg/repository/testhelper"
)

func TestBuntDBArchiveRepository(t *testing.T) {
	repo := gt.R1(buntdb.New(filepath.Join(t.TempDir(), "archive.db"))).NoError(t)
	t.Cleanup(func() { _ = repo.Close() })

	testhelper.TestArchiveRepository(t, repo)
}

func TestArchivePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")
	key := "https://api.github.com/repos/octo/app/actions/artifacts/1/zip"

	repo := gt.R1(buntdb.New(path)).NoError(t)
	gt.NoError(t, repo.PutArchive(ctx, key, []byte{0x50, 0x4b, 0x00, 0x01}))
	gt.NoError(t, repo.Close())

	reopened := gt.R1(buntdb.New(path)).NoError(t)
	t.Cleanup(func() { _ = reopened.Close() })

	data := gt.R1(reopened.GetArchive(ctx, key)).NoError(t)
	gt.V(t, data).Equal([]byte{0x50, 0x4b, 0x00, 0x01})
}

func TestNewWithEmptyPath(t *testing.T) {
	_, err := buntdb.New("")
	gt.Error(t, err)
}
