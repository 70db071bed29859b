package logging

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns request ID bound to ctx. A new ID is issued and bound to the returned
// context if ctx has none.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	id := types.NewRequestID()
	return id, context.WithValue(ctx, ctxRequestIDKey{}, id)
}

type ctxLoggerKey struct{}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger of the request or pipeline. Falls back to the process logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}
