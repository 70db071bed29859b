package infra

import (
	"time"

	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/repository/memory"
)

type Clients struct {
	github        interfaces.GitHub
	bqClient      interfaces.BigQuery
	archiveRepo   interfaces.ArchiveRepository
	actionRunRepo interfaces.ActionRunRepository
	now           func() time.Time
}

type Option func(*Clients)

// New creates set of infrastructure clients. Archive cache and bookkeeping default to in-memory
// repositories.
func New(options ...Option) *Clients {
	client := &Clients{
		archiveRepo:   memory.NewArchive(),
		actionRunRepo: memory.NewActionRun(),
		now:           time.Now,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) ArchiveRepository() interfaces.ArchiveRepository {
	return x.archiveRepo
}
func (x *Clients) ActionRunRepository() interfaces.ActionRunRepository {
	return x.actionRunRepo
}
func (x *Clients) Now() time.Time {
	return x.now()
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithArchiveRepository(repo interfaces.ArchiveRepository) Option {
	return func(x *Clients) {
		x.archiveRepo = repo
	}
}

func WithActionRunRepository(repo interfaces.ActionRunRepository) Option {
	return func(x *Clients) {
		x.actionRunRepo = repo
	}
}

func WithClock(now func() time.Time) Option {
	return func(x *Clients) {
		x.now = now
	}
}
