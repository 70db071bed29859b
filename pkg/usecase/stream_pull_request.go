package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/errutil"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

const (
	eventBufferSize = 16

	infoDataReady   = "data ready"
	infoStreamEnded = "stream ended"
)

// eventSender writes events to the stream unless the consumer has gone away
type eventSender struct {
	ctx context.Context
	ch  chan<- *model.Event
}

func (x *eventSender) send(ev *model.Event) error {
	select {
	case <-x.ctx.Done():
		return x.ctx.Err()
	case x.ch <- ev:
		return nil
	}
}

func (x *eventSender) info(format string, args ...any) error {
	return x.send(model.NewInfoEvent(fmt.Sprintf(format, args...)))
}

// StreamPullRequest runs the pipeline of the pull request on a new goroutine. The returned channel
// gets progress info events and then either (data ready info, result, close) or a close event
// explaining why no result is available. The channel is closed when the pipeline ends.
func (x *UseCase) StreamPullRequest(ctx context.Context, input *model.PullRequestInput) <-chan *model.Event {
	ch := make(chan *model.Event, eventBufferSize)

	go func() {
		defer close(ch)
		s := &eventSender{ctx: ctx, ch: ch}
		ctx := logging.With(ctx, logging.From(ctx).With(slog.String("pull_request", input.String())))

		if err := input.Validate(); err != nil {
			logging.From(ctx).Warn("invalid pull request", slog.Any("error", err))
			_ = s.send(model.NewCloseEvent("invalid pull request: " + input.String()))
			return
		}

		result, sha, err := x.processPullRequest(ctx, input, s)
		if err != nil {
			x.closeWithError(ctx, s, input, err)
			return
		}

		x.exportTiming(ctx, input, sha, result)

		logging.From(ctx).Info("pull request processed",
			slog.Int("files", len(result)),
			slog.Int("tests", result.TestCount()),
		)

		if s.send(model.NewInfoEvent(infoDataReady)) != nil {
			return
		}
		if s.send(model.NewResultEvent(result)) != nil {
			return
		}
		_ = s.send(model.NewCloseEvent(infoStreamEnded))
	}()

	return ch
}

func (x *UseCase) closeWithError(ctx context.Context, s *eventSender, input *model.PullRequestInput, err error) {
	// Only the consumer's own cancellation ends the stream quietly. A timeout of an upstream
	// request also unwraps to context.DeadlineExceeded and must be reported.
	if ctx.Err() != nil {
		logging.From(ctx).Info("pull request processing is cancelled", slog.Any("error", err))
		return
	}

	var msg string
	switch {
	case errors.Is(err, types.ErrMissingHead):
		msg = fmt.Sprintf("pull request %s has no head commit, nothing to report", input)
		logging.From(ctx).Info("pull request has no head commit")
		if s.send(model.NewInfoEvent(msg)) != nil {
			return
		}
		_ = s.send(model.NewCloseEvent(msg))
		return

	case errors.Is(err, types.ErrAuth):
		msg = "GitHub App authentication failed"
	case errors.Is(err, types.ErrDownload):
		msg = "failed to download artifact archive"
	case errors.Is(err, types.ErrUpstreamRequest):
		msg = "GitHub API request failed"
	default:
		msg = "internal error"
	}

	errutil.HandleError(ctx, "failed to process pull request", err)
	_ = s.send(model.NewCloseEvent(fmt.Sprintf("%s: %s", msg, input)))
}

// processPullRequest runs ResolvePR, CollectRuns, SelectArtifacts, fetch and Extract in order.
// Progress is sent as info events. It returns ErrMissingHead if the pull request has no head.
func (x *UseCase) processPullRequest(ctx context.Context, input *model.PullRequestInput, s *eventSender) (model.ExtractionResult, types.CommitSHA, error) {
	gh := x.clients.GitHub()
	if gh == nil {
		return nil, "", goerr.New("GitHub client is not configured")
	}

	pr, err := gh.GetPullRequest(ctx, input.Owner, input.Repo, input.Number)
	if err != nil {
		return nil, "", err
	}
	if pr.Head == nil {
		return nil, "", goerr.Wrap(types.ErrMissingHead, "pull request has no head", goerr.V("pull_request", input.String()))
	}
	sha := pr.Head.SHA

	if err := s.info("collecting workflow runs of %s (%s)", sha.Short(), pr.Head.Ref); err != nil {
		return nil, "", err
	}
	runs, err := collectWorkflowRuns(ctx, gh, input.Owner, input.Repo, pr.Head.Ref, sha)
	if err != nil {
		return nil, "", err
	}
	x.recordRuns(ctx, input, runs)

	if err := s.info("found %d workflow runs, looking for artifacts", len(runs)); err != nil {
		return nil, "", err
	}
	archives, err := selectArtifacts(ctx, gh, runs, sha)
	if err != nil {
		return nil, "", err
	}

	if err := s.info("found %d pytest artifacts", len(archives)); err != nil {
		return nil, "", err
	}

	result := model.ExtractionResult{}
	for i, archiveURL := range archives {
		if err := s.info("requesting artifact %d/%d", i+1, len(archives)); err != nil {
			return nil, "", err
		}

		data, hit, err := x.archives.FetchOrGet(ctx, archiveURL)
		if err != nil {
			return nil, "", err
		}
		logging.From(ctx).Debug("archive ready",
			slog.Int("index", i),
			slog.Bool("cache_hit", hit),
			slog.Int("size", len(data)),
		)

		extracted, err := extractTestReports(ctx, data, func(j, total int, name string) error {
			return s.info("extracting artifact %d/%d: file %d/%d %s", i+1, len(archives), j+1, total, name)
		})
		if err != nil {
			if errors.Is(err, types.ErrExtraction) {
				logging.From(ctx).Warn("skip artifact archive", slog.String("url", archiveURL), slog.Any("error", err))
				continue
			}
			return nil, "", err
		}

		result.Merge(extracted)
	}

	return result, sha, nil
}
