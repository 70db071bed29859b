package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/pytiming/pkg/domain/model"
)

type UseCase interface {
	// StreamPullRequest starts processing of the pull request and returns its progress events. The
	// channel is closed when processing ends or ctx is cancelled.
	StreamPullRequest(ctx context.Context, input *model.PullRequestInput) <-chan *model.Event

	RecordActionRun(ctx context.Context, run *model.ActionRun) error
	ListActionRuns(ctx context.Context) ([]*model.ActionRun, error)
	ListPullRequests(ctx context.Context) ([]*model.PullRequestEntry, error)
}
