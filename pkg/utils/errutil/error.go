package errutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// HandleError logs the error and sends it to Sentry. Request ID in ctx is attached as a tag so
// that a Sentry event can be matched with the request log.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		err = errors.New(msg)
	}

	reqID, _ := logging.CtxRequestID(ctx)

	// Sending error to Sentry
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", reqID.String())
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"request_id", reqID,
		"sentry.EventID", evID,
	)
}
