package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/stretchr/testify/require"

	"github.com/siahsang/news/internal/config"
	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/models"
)

// fakeStore is an in-memory store. When err is set every method returns it;
// when panicMsg is set every method panics.
type fakeStore struct {
	mu sync.Mutex

	topics   []models.Topic
	users    []models.User
	articles map[int64]*models.Article
	comments map[int64]*models.Comment
	nextID   int64

	calls     int
	lastQuery filter.ArticleQuery
	err       error
	panicMsg  string
}

func newFakeStore() *fakeStore {
	created := time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)
	return &fakeStore{
		topics: []models.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
		},
		users: []models.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://example.com/jonny.jpg"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://example.com/lurker.png"},
		},
		articles: map[int64]*models.Article{
			1: {ID: 1, Author: "butter_bridge", Title: "Living in the shadow of a great man", Body: "I find this existence challenging",
				Topic: "mitch", CreatedAt: created, Votes: 100, CommentCount: 1},
			2: {ID: 2, Author: "lurker", Title: "UNCOVERED: catspiracy", Body: "Bastet walks amongst us",
				Topic: "cats", CreatedAt: created.Add(time.Hour)},
		},
		comments: map[int64]*models.Comment{
			1: {ID: 1, ArticleID: 1, Author: "lurker", Body: "Oh, I've got compassion running out of my nose", Votes: 16, CreatedAt: created},
		},
		nextID: 2,
	}
}

// enter locks the store; callers defer the returned unlock.
func (s *fakeStore) enter() (func(), error) {
	s.mu.Lock()
	s.calls++
	if s.panicMsg != "" {
		msg := s.panicMsg
		s.mu.Unlock()
		panic(msg)
	}
	return s.mu.Unlock, s.err
}

func (s *fakeStore) GetTopics(ctx context.Context) ([]models.Topic, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.topics), nil
}

func (s *fakeStore) GetArticles(ctx context.Context, q filter.ArticleQuery) ([]models.Article, filter.Metadata, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, filter.Metadata{}, err
	}
	s.lastQuery = q

	articles := []models.Article{}
	for _, a := range s.articles {
		if topic, ok := q.Equals["topic"]; ok && a.Topic != topic {
			continue
		}
		if author, ok := q.Equals["author"]; ok && a.Author != author {
			continue
		}
		summary := *a
		summary.Body = ""
		articles = append(articles, summary)
	}
	slices.SortFunc(articles, func(a, b models.Article) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return articles, filter.Metadata{TotalCount: int64(len(articles))}, nil
}

func (s *fakeStore) GetArticleByID(ctx context.Context, articleID int64) (*models.Article, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	a, ok := s.articles[articleID]
	if !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	article := *a
	return &article, nil
}

func (s *fakeStore) UpdateArticleVotes(ctx context.Context, articleID, delta int64) (*models.Article, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	a, ok := s.articles[articleID]
	if !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	a.Votes = core.ClampVotes(a.Votes, delta)
	article := *a
	return &article, nil
}

func (s *fakeStore) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]models.Comment, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if _, ok := s.articles[articleID]; !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	slices.SortFunc(comments, func(a, b models.Comment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return comments, nil
}

func (s *fakeStore) CreateComment(ctx context.Context, articleID int64, username, body string) (*models.Comment, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	_, articleOK := s.articles[articleID]
	userOK := slices.ContainsFunc(s.users, func(u models.User) bool { return u.Username == username })
	if !articleOK || !userOK {
		return nil, xerrors.Newf("insert comment: %w", core.ErrInvalidReference)
	}

	comment := &models.Comment{
		ID:        s.nextID,
		ArticleID: articleID,
		Author:    username,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.comments[comment.ID] = comment
	created := *comment
	return &created, nil
}

func (s *fakeStore) UpdateCommentVotes(ctx context.Context, commentID, delta int64) (*models.Comment, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	c, ok := s.comments[commentID]
	if !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	c.Votes = core.ClampVotes(c.Votes, delta)
	comment := *c
	return &comment, nil
}

func (s *fakeStore) DeleteComment(ctx context.Context, commentID int64) error {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := s.comments[commentID]; !ok {
		return xerrors.New(core.NoRecordFound)
	}
	delete(s.comments, commentID)
	return nil
}

func (s *fakeStore) GetUsers(ctx context.Context) ([]models.User, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.users), nil
}

func (s *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	unlock, err := s.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, xerrors.New(core.NoRecordFound)
}

func newTestApp(t *testing.T, s store) *application {
	t.Helper()
	return &application{
		config: config.Default(),
		core:   s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}
