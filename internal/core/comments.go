package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

func scanComment(rows *sql.Rows) (models.Comment, error) {
	var comment models.Comment
	if err := rows.Scan(
		&comment.ID,
		&comment.ArticleID,
		&comment.Author,
		&comment.Body,
		&comment.Votes,
		&comment.CreatedAt,
	); err != nil {
		return models.Comment{}, xerrors.New(err)
	}
	return comment, nil
}

// GetCommentsByArticleID returns the article's comments, newest first. An
// article without comments gives an empty slice; a missing article gives
// NoRecordFound.
func (c *Core) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]models.Comment, error) {
	exists, err := c.articleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, xerrors.New(NoRecordFound)
	}

	const query = `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC
	`

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanComment, articleID)
	if err != nil {
		return nil, translateDBError(err)
	}
	return comments, nil
}

// CreateComment inserts a comment. An unknown article or author surfaces as
// ErrInvalidReference through the foreign keys.
func (c *Core) CreateComment(ctx context.Context, articleID int64, username, body string) (*models.Comment, error) {
	const query = `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanComment, articleID, username, body)
	if err != nil {
		return nil, translateDBError(err)
	}

	c.log.DebugContext(ctx, "Comment created",
		"comment_id", comment.ID,
		"article_id", comment.ArticleID,
	)
	return &comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, commentID int64) error {
	const query = `DELETE FROM comments WHERE comment_id = $1`

	affected, err := databaseutils.ExecuteStatement(c.sqlTemplate, ctx, query, commentID)
	if err != nil {
		return translateDBError(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}
	return nil
}
