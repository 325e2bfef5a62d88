package main

import (
	"context"

	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/models"
)

// store is the part of *core.Core the handlers depend on.
type store interface {
	GetTopics(ctx context.Context) ([]models.Topic, error)

	GetArticles(ctx context.Context, q filter.ArticleQuery) ([]models.Article, filter.Metadata, error)
	GetArticleByID(ctx context.Context, articleID int64) (*models.Article, error)
	UpdateArticleVotes(ctx context.Context, articleID, delta int64) (*models.Article, error)

	GetCommentsByArticleID(ctx context.Context, articleID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, articleID int64, username, body string) (*models.Comment, error)
	UpdateCommentVotes(ctx context.Context, commentID, delta int64) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error

	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
