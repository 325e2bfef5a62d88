package main

import (
	"net/http"
	"strings"

	"github.com/siahsang/news/internal/validator"
)

func (app *application) getArticleComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	comments, err := app.core.GetCommentsByArticleID(r.Context(), articleID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createComment(w http.ResponseWriter, r *http.Request) {
	type createCommentPayload struct {
		Username string `json:"username"`
		Body     string `json:"body"`
	}

	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	var payload createCommentPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(payload.Username, "username", "must be provided")
	v.CheckNotBlank(payload.Body, "body", "must be provided")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	comment, err := app.core.CreateComment(r.Context(), articleID, strings.TrimSpace(payload.Username), payload.Body)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"postedComment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	delta, err := app.readVotes(w, r)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	comment, err := app.core.UpdateCommentVotes(r.Context(), commentID, delta)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.core.DeleteComment(r.Context(), commentID); err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
