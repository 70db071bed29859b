package testhelper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/repository"
)

// TestArchiveRepository runs all test cases for ArchiveRepository
func TestArchiveRepository(t *testing.T, repo interfaces.ArchiveRepository) {
	t.Run("PutAndGet", func(t *testing.T) {
		TestArchivePutAndGet(t, repo)
	})
	t.Run("NotFound", func(t *testing.T) {
		TestArchiveNotFound(t, repo)
	})
	t.Run("ConcurrentPut", func(t *testing.T) {
		TestArchiveConcurrentPut(t, repo)
	})
}

func newArchiveKey() string {
	return fmt.Sprintf("https://api.github.com/repos/octo/app/actions/artifacts/%s/zip", uuid.New().String())
}

func TestArchivePutAndGet(t *testing.T, repo interfaces.ArchiveRepository) {
	ctx := context.Background()
	key := newArchiveKey()
	data := []byte{'P', 'K', 0x03, 0x04, 0x00, 0xff}

	gt.NoError(t, repo.PutArchive(ctx, key, data))

	retrieved, err := repo.GetArchive(ctx, key)
	gt.NoError(t, err)
	gt.V(t, retrieved).Equal(data)

	// Modifying given slice must not affect stored value
	data[0] = 'X'
	retrieved, err = repo.GetArchive(ctx, key)
	gt.NoError(t, err)
	gt.V(t, retrieved[0]).Equal(byte('P'))

	// Empty archive is a valid value
	emptyKey := newArchiveKey()
	gt.NoError(t, repo.PutArchive(ctx, emptyKey, []byte{}))
	retrieved, err = repo.GetArchive(ctx, emptyKey)
	gt.NoError(t, err)
	gt.V(t, len(retrieved)).Equal(0)
}

func TestArchiveNotFound(t *testing.T, repo interfaces.ArchiveRepository) {
	ctx := context.Background()

	_, err := repo.GetArchive(ctx, newArchiveKey())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestArchiveConcurrentPut(t *testing.T, repo interfaces.ArchiveRepository) {
	ctx := context.Background()
	key := newArchiveKey()
	data := []byte("same archive body")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gt.NoError(t, repo.PutArchive(ctx, key, data))
		}()
	}
	wg.Wait()

	retrieved, err := repo.GetArchive(ctx, key)
	gt.NoError(t, err)
	gt.V(t, string(retrieved)).Equal(string(data))
}
