package main

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundHandler)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api", app.getEndpoints)
	router.HandlerFunc(http.MethodGet, "/api/topics", app.getTopics)

	router.HandlerFunc(http.MethodGet, "/api/articles", app.getArticles)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id", app.getArticle)
	router.HandlerFunc(http.MethodPatch, "/api/articles/:article_id", app.updateArticleVotes)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id/comments", app.getArticleComments)
	router.HandlerFunc(http.MethodPost, "/api/articles/:article_id/comments", app.createComment)

	router.HandlerFunc(http.MethodPatch, "/api/comments/:comment_id", app.updateCommentVotes)
	router.HandlerFunc(http.MethodDelete, "/api/comments/:comment_id", app.deleteComment)

	router.HandlerFunc(http.MethodGet, "/api/users", app.getUsers)
	router.HandlerFunc(http.MethodGet, "/api/users/:username", app.getUser)

	var handler http.Handler = router
	handler = app.recoverPanic(handler)
	handler = app.recordMetrics(handler)
	handler = app.requestID(handler)
	handler = middleware.Heartbeat("/ping")(handler)
	handler = middleware.RealIP(handler)

	return handler
}

func (app *application) diagRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	return mux
}
