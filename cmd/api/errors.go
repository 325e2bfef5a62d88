package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/web"
)

// AppError is the only error shape written to clients: the status and the
// {"msg": ...} body. ErrorStack and ErrorDetails are logged, never sent.
type AppError struct {
	Status       int
	Message      string
	ErrorStack   error
	ErrorDetails map[string]string
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, appError *AppError) {
	app.errorResponse(w, r, http.StatusBadRequest, appError)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, &AppError{ErrorStack: err})
}

func (app *application) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	app.notFoundResponse(w, r, nil)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, &AppError{})
}

func (app *application) internalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusInternalServerError, &AppError{ErrorStack: err})
}

// domainErrorResponse maps an error from the core onto its response. Anything
// that is not one of the core sentinels is a 500.
func (app *application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidID), errors.Is(err, core.ErrInvalidInput):
		app.badRequestResponse(w, r, &AppError{ErrorStack: err})
	case errors.Is(err, core.NoRecordFound), errors.Is(err, core.ErrInvalidReference):
		app.notFoundResponse(w, r, err)
	default:
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, appError *AppError) {
	appError.Status = status
	if appError.Message == "" {
		appError.Message = http.StatusText(status)
	}

	attrs := []slog.Attr{
		slog.Int("status", status),
		slog.String("request_url", r.URL.String()),
		slog.String("request_method", r.Method),
	}
	if appError.ErrorStack != nil {
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(appError.ErrorStack)))
	}
	for key, valueData := range appError.ErrorDetails {
		attrs = append(attrs, slog.String(key, valueData))
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	web.Logger(r, app.logger).LogAttrs(r.Context(), level, "Error handling request", attrs...)

	if err := app.writeJSON(w, status, envelope{"msg": appError.Message}, nil); err != nil {
		app.logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}
