package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery GitHub Authority

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// Authority provides Authorization header value of GitHub API requests
type Authority interface {
	Header(ctx context.Context) (string, error)
}

// GitHub is a GitHub REST API client authenticated as an app installation
type GitHub interface {
	GetPullRequest(ctx context.Context, owner, repo string, number types.PullNumber) (*model.PullRequest, error)
	// ListWorkflowRuns returns one page of workflow runs
	ListWorkflowRuns(ctx context.Context, input *ListWorkflowRunsInput) ([]*model.WorkflowRun, error)
	ListArtifacts(ctx context.Context, artifactsURL string) ([]*model.Artifact, error)
	DownloadArchive(ctx context.Context, archiveURL string) ([]byte, error)
}

type ListWorkflowRunsInput struct {
	Owner   string
	Repo    string
	Event   string
	HeadSHA types.CommitSHA
	// Page is 1-based as GitHub API
	Page    int
	PerPage int
}
