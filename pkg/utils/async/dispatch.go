package async

import (
	"context"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch executes a handler function asynchronously with proper context
// and panic recovery.
//
// The handler runs on a new background context that preserves the ctxlog
// logger, so cancellation of the originating request (e.g. the webhook
// HTTP request finishing) does not cut the work short. Panics are
// recovered and logged; errors and panics are reported to Sentry when a
// DSN is configured (no-op otherwise).
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				sentry.CurrentHub().Recover(r)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("error in async handler", "error", err)
			sentry.CaptureException(err)
		}
	}()
}

// newBackgroundContext creates a new background context preserving the
// ctxlog logger
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	return newCtx
}
