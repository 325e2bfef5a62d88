package web

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
)

func AddValueToContext(r *http.Request, key any, value any) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, key, value)
	return r.WithContext(ctx)
}

func GetValueFromContext[T any](r *http.Request, key any) (T, bool) {
	val := r.Context().Value(key)
	if val == nil {
		var zero T
		return zero, false
	}
	tVal, ok := val.(T)

	if !ok {
		var zero T
		return zero, false
	}

	return tVal, true
}

// WithRequestID stores the request id together with a logger that carries it.
func WithRequestID(r *http.Request, requestID string, logger *slog.Logger) *http.Request {
	r = AddValueToContext(r, requestIDKey, requestID)
	return AddValueToContext(r, loggerKey, logger.With(slog.String("request_id", requestID)))
}

func RequestID(r *http.Request) string {
	id, _ := GetValueFromContext[string](r, requestIDKey)
	return id
}

// Logger returns the request-scoped logger, or fallback when the request has
// not been through the request id middleware.
func Logger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if logger, ok := GetValueFromContext[*slog.Logger](r, loggerKey); ok {
		return logger
	}
	return fallback
}
