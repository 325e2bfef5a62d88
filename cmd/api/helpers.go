package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/validator"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		app.logger.Error(err.Error())
		return err
	}

	return nil
}

// readJSON decodes exactly one JSON value into dst, rejecting unknown fields.
// Every client mistake comes back wrapping core.ErrInvalidInput.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	const maxBytes = 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err == nil {
		if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return xerrors.Newf("body must contain a single JSON value: %w", core.ErrInvalidInput)
		}
		return nil
	}

	var (
		syntaxError        *json.SyntaxError
		unmarshalTypeError *json.UnmarshalTypeError
		maxBytesError      *http.MaxBytesError
		reason             string
	)
	switch {
	case errors.As(err, &syntaxError):
		reason = fmt.Sprintf("badly-formed JSON at character %d", syntaxError.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		reason = "badly-formed JSON"
	case errors.As(err, &unmarshalTypeError) && unmarshalTypeError.Field != "":
		reason = fmt.Sprintf("incorrect JSON type for field %q", unmarshalTypeError.Field)
	case errors.As(err, &unmarshalTypeError):
		reason = fmt.Sprintf("incorrect JSON type at character %d", unmarshalTypeError.Offset)
	case errors.Is(err, io.EOF):
		reason = "empty body"
	case errors.As(err, &maxBytesError):
		reason = fmt.Sprintf("body larger than %d bytes", maxBytes)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		reason = strings.TrimPrefix(err.Error(), "json: ")
	default:
		return xerrors.Newf("decoding JSON body: %w", err)
	}

	return xerrors.Newf("%s: %w", reason, core.ErrInvalidInput)
}

// readIDParam reads a numeric path parameter. A value that is not a run of
// digits is ErrInvalidID; a well-formed value beyond the SERIAL range cannot
// name a row and is NoRecordFound.
func (app *application) readIDParam(r *http.Request, name string) (int64, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)

	v := validator.New()
	v.CheckID(raw, name)
	if !v.IsValid() {
		return 0, xerrors.Newf("%s %q %s: %w", name, raw, v.Errors[name], core.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, xerrors.Newf("%s %q: %w", name, raw, core.NoRecordFound)
	}
	return id, nil
}

func (app *application) readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

func (app *application) readInt(qs url.Values, key string, defaultValue int64, v *validator.Validator) int64 {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

func (app *application) doInBackground(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				app.logger.Error(fmt.Sprintf("panic in background task: %v", r))
			}
		}()
		fn()
	}()
}
