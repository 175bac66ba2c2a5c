// Package logger builds configured slog.Logger instances and supplies
// typed attribute helpers, so services log the same fields under the
// same keys everywhere.
//
// # Construction
//
// New assembles a *slog.Logger from options; the zero-option call gives
// JSON at Info level on stdout:
//
//	log := logger.New(
//		logger.WithTextFormatter(),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
// The environment presets bundle the usual combinations, tagging every
// record with the app name:
//
//	log := logger.New(logger.WithProduction("billing-api"))
//	// or WithStaging / WithDevelopment for looser levels and text output
//
// # Context extraction
//
// WithContextValue lifts a context value into every record logged with
// a ctx-aware method, which is how request IDs follow a request through
// layers that never see the HTTP request:
//
//	type ctxKey struct{}
//	log := logger.New(
//		logger.WithContextValue("request_id", ctxKey{}),
//	)
//
//	log.InfoContext(ctx, "charge created") // includes request_id
//
// WithContextExtractors accepts arbitrary hooks for values that need
// computation rather than a straight lookup:
//
//	func sessionAttr(ctx context.Context) (slog.Attr, bool) {
//		sess, ok := ctx.Value(sessionKey{}).(Session)
//		if !ok {
//			return slog.Attr{}, false
//		}
//		return logger.ID("session_id", sess.ID), true
//	}
//
//	log := logger.New(logger.WithContextExtractors(sessionAttr))
//
// # Attribute helpers
//
// The helpers in attr.go pin the field vocabulary: Error, Errors,
// Duration, RequestID, Method, Path, StatusCode, ClientIP, Component,
// Event, and the rest. Helpers given nothing to log (nil error, empty
// ID) return the zero slog.Attr, which slog drops, so they are safe to
// call unconditionally:
//
//	log.Info("request finished",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Duration(elapsed),
//		logger.Error(err), // nothing logged when err is nil
//	)
//
// Group nests related attrs:
//
//	log.Info("cache result",
//		logger.Group("redis",
//			logger.Key("hit", hit),
//			logger.Elapsed(start),
//		))
//
// Stack and Caller capture debugging context; Stack is what panic
// recovery paths attach before re-reporting.
package logger
