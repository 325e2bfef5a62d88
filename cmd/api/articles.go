package main

import (
	"net/http"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/validator"
)

type votesPayload struct {
	IncVotes *int64 `json:"inc_votes"`
}

func (app *application) getArticles(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	q := filter.NewArticleQuery()
	for key := range query {
		q.Equals[key] = query.Get(key)
	}
	q.SortBy = app.readString(query, "sort_by", filter.DefaultSortBy)
	q.Order = app.readString(query, "order", filter.DefaultOrder)
	q.Filter = filter.NewFilter(
		app.readInt(query, "limit", 0, v),
		app.readInt(query, "p", 1, v),
	)

	filter.ValidateArticleQuery(v, q)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	articles, metadata, err := app.core.GetArticles(r.Context(), q)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"articles":    articles,
		"total_count": metadata.TotalCount,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	article, err := app.core.GetArticleByID(r.Context(), articleID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	delta, err := app.readVotes(w, r)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	article, err := app.core.UpdateArticleVotes(r.Context(), articleID, delta)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// readVotes decodes a {"inc_votes": n} body.
func (app *application) readVotes(w http.ResponseWriter, r *http.Request) (int64, error) {
	var payload votesPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		return 0, err
	}

	v := validator.New()
	v.Check(payload.IncVotes != nil, "inc_votes", "must be provided")
	if !v.IsValid() {
		return 0, xerrors.Newf("inc_votes %s: %w", v.Errors["inc_votes"], core.ErrInvalidInput)
	}
	return *payload.IncVotes, nil
}
