package main

import (
	"net/http"

	"github.com/siahsang/news/internal/docs"
)

func (app *application) getEndpoints(w http.ResponseWriter, r *http.Request) {
	endpoints, err := docs.Endpoints()
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, endpoints, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := app.core.GetTopics(r.Context())
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, topics, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
