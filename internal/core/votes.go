package core

import (
	"context"
	"database/sql"
	"math"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

// ClampVotes applies delta to current and never goes below zero.
func ClampVotes(current, delta int64) int64 {
	if delta > 0 && current > math.MaxInt64-delta {
		return math.MaxInt64
	}
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

func scanVotes(rows *sql.Rows) (int64, error) {
	var votes int64
	if err := rows.Scan(&votes); err != nil {
		return 0, xerrors.New(err)
	}
	return votes, nil
}

// UpdateArticleVotes locks the article row, writes the clamped vote count and
// returns the article as stored after the update.
func (c *Core) UpdateArticleVotes(ctx context.Context, articleID, delta int64) (*models.Article, error) {
	article, err := databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (models.Article, error) {
		current, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx,
			`SELECT votes FROM articles WHERE article_id = $1 FOR UPDATE`, scanVotes, articleID)
		if err != nil {
			return models.Article{}, err
		}

		if _, err := databaseutils.ExecuteStatement(c.sqlTemplate, txCtx,
			`UPDATE articles SET votes = $2 WHERE article_id = $1`, articleID, ClampVotes(current, delta)); err != nil {
			return models.Article{}, err
		}

		return databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, selectArticleSQL, scanArticle, articleID)
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	return &article, nil
}

func (c *Core) UpdateCommentVotes(ctx context.Context, commentID, delta int64) (*models.Comment, error) {
	comment, err := databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (models.Comment, error) {
		current, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx,
			`SELECT votes FROM comments WHERE comment_id = $1 FOR UPDATE`, scanVotes, commentID)
		if err != nil {
			return models.Comment{}, err
		}

		return databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, `
			UPDATE comments SET votes = $2
			WHERE comment_id = $1
			RETURNING `+commentColumns,
			scanComment, commentID, ClampVotes(current, delta))
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	return &comment, nil
}
