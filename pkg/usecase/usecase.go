package usecase

import (
	"context"

	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/infra"
)

type UseCase struct {
	clients  *infra.Clients
	archives *ArchiveCache
}

var _ interfaces.UseCase = (*UseCase)(nil)

// New creates UseCase. Archive cache is created here and shared by all requests served by the
// UseCase, so New should be called once per process.
func New(clients *infra.Clients) *UseCase {
	uc := &UseCase{
		clients: clients,
	}
	uc.archives = NewArchiveCache(clients.ArchiveRepository(), uc.downloadArchive)
	return uc
}

func (x *UseCase) downloadArchive(ctx context.Context, archiveURL string) ([]byte, error) {
	return x.clients.GitHub().DownloadArchive(ctx, archiveURL)
}
