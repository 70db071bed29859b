package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// eventWriter writes events in text/event-stream format. id starts from 1 for each connection.
type eventWriter struct {
	w           http.ResponseWriter
	rc          *http.ResponseController
	retryMillis int
	id          int
}

func newEventWriter(w http.ResponseWriter, retryMillis int) *eventWriter {
	return &eventWriter{
		w:           w,
		rc:          http.NewResponseController(w),
		retryMillis: retryMillis,
	}
}

// start sends the response header. Write deadline of the server is disabled for the connection
// because a stream can last longer than it.
func (x *eventWriter) start() error {
	if err := x.rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return goerr.Wrap(err, "failed to clear write deadline")
	}

	hdr := x.w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	x.w.WriteHeader(http.StatusOK)

	if err := x.rc.Flush(); err != nil {
		return goerr.Wrap(err, "failed to flush stream header")
	}
	return nil
}

func (x *eventWriter) write(ev *model.Event) error {
	payload, err := ev.Payload()
	if err != nil {
		return err
	}

	x.id++
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "data: %s\n", payload)
	fmt.Fprintf(&buf, "event: %s\n", ev.Name)
	fmt.Fprintf(&buf, "id: %d\n", x.id)
	fmt.Fprintf(&buf, "retry: %d\n\n", x.retryMillis)

	if _, err := x.w.Write(buf.Bytes()); err != nil {
		return goerr.Wrap(err, "failed to write event", goerr.V("id", x.id))
	}
	if err := x.rc.Flush(); err != nil {
		return goerr.Wrap(err, "failed to flush event", goerr.V("id", x.id))
	}
	return nil
}

// handleStreamPullRequest streams progress of the pull request processing. Closing the connection
// cancels the processing.
func handleStreamPullRequest(uc interfaces.UseCase, retryMillis int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := pullRequestInput(r)
		if err != nil {
			logging.From(r.Context()).Warn("invalid pull request", slog.Any("error", err))
			safeWrite(w, http.StatusBadRequest, []byte("invalid pull request"))
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		logger := logging.From(ctx)

		ew := newEventWriter(w, retryMillis)
		if err := ew.start(); err != nil {
			logger.Warn("fail to start event stream", slog.Any("error", err))
			return
		}

		for ev := range uc.StreamPullRequest(ctx, input) {
			if err := ew.write(ev); err != nil {
				logger.Info("event stream is closed by client", slog.Any("error", err))
				return
			}
		}

		logger.Debug("event stream finished", slog.Int("events", ew.id))
	}
}
