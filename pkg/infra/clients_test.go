package infra_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/mock"
	"github.com/m-mizutani/pytiming/pkg/infra"
	"github.com/m-mizutani/pytiming/pkg/repository/memory"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// Repositories default to in-memory implementation
		_, ok := clients.ArchiveRepository().(*memory.Archive)
		gt.True(t, ok)
		_, ok = clients.ActionRunRepository().(*memory.ActionRun)
		gt.True(t, ok)
		// Same instance is returned when called again
		gt.V(t, clients.ArchiveRepository()).Equal(clients.ArchiveRepository())
		// GitHub and BigQuery should be nil without configuration
		gt.V(t, clients.GitHub()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
	})

	t.Run("WithGitHub option sets GitHub client", func(t *testing.T) {
		mockGH := &mock.GitHubMock{}
		clients := infra.New(infra.WithGitHub(mockGH))
		gt.V(t, clients.GitHub()).Equal(mockGH)
	})

	t.Run("WithBigQuery option sets BigQuery client", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{}
		clients := infra.New(infra.WithBigQuery(mockBQ))
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
	})

	t.Run("WithClock option sets clock", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		clients := infra.New(infra.WithClock(func() time.Time { return now }))
		gt.V(t, clients.Now()).Equal(now)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		mockGH := &mock.GitHubMock{}
		mockArchive := &mock.ArchiveRepositoryMock{}
		mockRuns := &mock.ActionRunRepositoryMock{}

		clients := infra.New(
			infra.WithGitHub(mockGH),
			infra.WithArchiveRepository(mockArchive),
			infra.WithActionRunRepository(mockRuns),
		)

		gt.V(t, clients.GitHub()).Equal(mockGH)
		gt.V(t, clients.ArchiveRepository()).Equal(mockArchive)
		gt.V(t, clients.ActionRunRepository()).Equal(mockRuns)
	})
}
