package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siahsang/news/models"
)

func TestGetArticleComments(t *testing.T) {
	h := newTestApp(t, newFakeStore()).routes()

	rec := doRequest(t, h, http.MethodGet, "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[struct {
		Comments []models.Comment `json:"comments"`
	}](t, rec)
	require.Len(t, body.Comments, 1)
	assert.Equal(t, int64(1), body.Comments[0].ArticleID)

	rec = doRequest(t, h, http.MethodGet, "/api/articles/2/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"comments": []}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/api/articles/999/comments", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/articles/x/comments", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateComment(t *testing.T) {
	s := newFakeStore()
	h := newTestApp(t, s).routes()

	rec := doRequest(t, h, http.MethodPost, "/api/articles/2/comments", `{"username": "butter_bridge", "body": "Meow"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	posted := decodeBody[struct {
		PostedComment models.Comment `json:"postedComment"`
	}](t, rec).PostedComment
	assert.Equal(t, int64(2), posted.ID)
	assert.Equal(t, int64(2), posted.ArticleID)
	assert.Equal(t, "butter_bridge", posted.Author)
	assert.Equal(t, "Meow", posted.Body)
	assert.Equal(t, int64(0), posted.Votes)
	assert.False(t, posted.CreatedAt.IsZero())
	assert.Contains(t, s.comments, int64(2))
}

func TestCreateCommentErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{name: "missing body", target: "/api/articles/1/comments", body: `{"username": "lurker"}`, wantStatus: http.StatusBadRequest},
		{name: "missing username", target: "/api/articles/1/comments", body: `{"body": "hi"}`, wantStatus: http.StatusBadRequest},
		{name: "blank body", target: "/api/articles/1/comments", body: `{"username": "lurker", "body": "  "}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", target: "/api/articles/1/comments", body: `{"username": `, wantStatus: http.StatusBadRequest},
		{name: "bad article id", target: "/api/articles/abc/comments", body: `{"username": "lurker", "body": "hi"}`, wantStatus: http.StatusBadRequest},
		{name: "absent article", target: "/api/articles/999/comments", body: `{"username": "lurker", "body": "hi"}`, wantStatus: http.StatusNotFound},
		{name: "unknown user", target: "/api/articles/1/comments", body: `{"username": "ghost", "body": "boo"}`, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestApp(t, newFakeStore()).routes()
			rec := doRequest(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, http.StatusText(tt.wantStatus), decodeBody[msgResponse](t, rec).Msg)
		})
	}
}

func TestDeleteComment(t *testing.T) {
	s := newFakeStore()
	h := newTestApp(t, s).routes()

	rec := doRequest(t, h, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NotContains(t, s.comments, int64(1))

	rec = doRequest(t, h, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/api/comments/first", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCommentVotes(t *testing.T) {
	h := newTestApp(t, newFakeStore()).routes()

	rec := doRequest(t, h, http.MethodPatch, "/api/comments/1", `{"inc_votes": -20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	comment := decodeBody[struct {
		Comment models.Comment `json:"comment"`
	}](t, rec).Comment
	assert.Equal(t, int64(0), comment.Votes)

	rec = doRequest(t, h, http.MethodPatch, "/api/comments/999", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodPatch, "/api/comments/1", `{"inc": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
