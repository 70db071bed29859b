package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/mock"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/repository"
	"github.com/m-mizutani/pytiming/pkg/repository/memory"
	"github.com/m-mizutani/pytiming/pkg/usecase"
)

const testArchiveURL = "https://api.example.com/artifacts/11/zip"

func TestArchiveCacheFetchOrGet(t *testing.T) {
	ctx := context.Background()

	t.Run("second call does not fetch", func(t *testing.T) {
		var calls atomic.Int32
		cache := usecase.NewArchiveCache(memory.NewArchive(), func(ctx context.Context, archiveURL string) ([]byte, error) {
			calls.Add(1)
			return []byte("zip-body"), nil
		})

		data, hit, err := cache.FetchOrGet(ctx, testArchiveURL)
		gt.NoError(t, err)
		gt.False(t, hit)
		gt.V(t, data).Equal([]byte("zip-body"))

		data, hit, err = cache.FetchOrGet(ctx, testArchiveURL)
		gt.NoError(t, err)
		gt.True(t, hit)
		gt.V(t, data).Equal([]byte("zip-body"))
		gt.V(t, calls.Load()).Equal(int32(1))
	})

	t.Run("concurrent misses share one fetch", func(t *testing.T) {
		var calls atomic.Int32
		cache := usecase.NewArchiveCache(memory.NewArchive(), func(ctx context.Context, archiveURL string) ([]byte, error) {
			calls.Add(1)
			time.Sleep(50 * time.Millisecond)
			return []byte("zip-body"), nil
		})

		const workers = 16
		var wg sync.WaitGroup
		start := make(chan struct{})
		results := make([][]byte, workers)
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				results[i], _, errs[i] = cache.FetchOrGet(ctx, testArchiveURL)
			}(i)
		}
		close(start)
		wg.Wait()

		gt.V(t, calls.Load()).Equal(int32(1))
		for i := 0; i < workers; i++ {
			gt.NoError(t, errs[i])
			gt.V(t, results[i]).Equal([]byte("zip-body"))
		}
	})

	t.Run("failed fetch is not stored", func(t *testing.T) {
		repo := memory.NewArchive()
		var calls atomic.Int32
		cache := usecase.NewArchiveCache(repo, func(ctx context.Context, archiveURL string) ([]byte, error) {
			if calls.Add(1) == 1 {
				return nil, goerr.Wrap(types.ErrDownload, "gone")
			}
			return []byte("zip-body"), nil
		})

		_, _, err := cache.FetchOrGet(ctx, testArchiveURL)
		gt.True(t, errors.Is(err, types.ErrDownload))

		_, err = repo.GetArchive(ctx, testArchiveURL)
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		data, hit, err := cache.FetchOrGet(ctx, testArchiveURL)
		gt.NoError(t, err)
		gt.False(t, hit)
		gt.V(t, data).Equal([]byte("zip-body"))
		gt.V(t, calls.Load()).Equal(int32(2))
	})

	t.Run("store failure still returns archive", func(t *testing.T) {
		repo := &mock.ArchiveRepositoryMock{
			GetArchiveFunc: func(ctx context.Context, key string) ([]byte, error) {
				return nil, repository.ErrNotFound
			},
			PutArchiveFunc: func(ctx context.Context, key string, data []byte) error {
				return errors.New("disk full")
			},
		}
		cache := usecase.NewArchiveCache(repo, func(ctx context.Context, archiveURL string) ([]byte, error) {
			return []byte("zip-body"), nil
		})

		data, hit, err := cache.FetchOrGet(ctx, testArchiveURL)
		gt.NoError(t, err)
		gt.False(t, hit)
		gt.V(t, data).Equal([]byte("zip-body"))
		gt.A(t, repo.PutArchiveCalls()).Length(1)
		gt.V(t, repo.PutArchiveCalls()[0].Key).Equal(testArchiveURL)
	})

	t.Run("cancelled caller returns early", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		cache := usecase.NewArchiveCache(memory.NewArchive(), func(ctx context.Context, archiveURL string) ([]byte, error) {
			<-release
			return []byte("zip-body"), nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := cache.FetchOrGet(ctx, testArchiveURL)
		gt.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("cancelled caller does not cancel shared fetch", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32
		var fetchErr atomic.Value
		cache := usecase.NewArchiveCache(memory.NewArchive(), func(ctx context.Context, archiveURL string) ([]byte, error) {
			calls.Add(1)
			close(started)
			select {
			case <-release:
			case <-ctx.Done():
				fetchErr.Store(ctx.Err())
				return nil, ctx.Err()
			}
			return []byte("zip-body"), nil
		})

		ctxA, cancelA := context.WithCancel(context.Background())
		errA := make(chan error, 1)
		go func() {
			_, _, err := cache.FetchOrGet(ctxA, testArchiveURL)
			errA <- err
		}()
		<-started

		type fetched struct {
			data []byte
			err  error
		}
		doneB := make(chan fetched, 1)
		go func() {
			data, _, err := cache.FetchOrGet(ctx, testArchiveURL)
			doneB <- fetched{data: data, err: err}
		}()
		time.Sleep(50 * time.Millisecond)

		cancelA()
		gt.True(t, errors.Is(<-errA, context.Canceled))

		time.Sleep(20 * time.Millisecond)
		close(release)

		b := <-doneB
		gt.NoError(t, b.err)
		gt.V(t, b.data).Equal([]byte("zip-body"))
		gt.V(t, calls.Load()).Equal(int32(1))
		gt.True(t, fetchErr.Load() == nil)
	})
}
