package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

const selectArticleSQL = `
	SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes, a.article_img_url,
	       COUNT(c.comment_id) AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id
	WHERE a.article_id = $1
	GROUP BY a.article_id
`

func scanArticleSummary(rows *sql.Rows) (models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&article.Topic,
		&article.CreatedAt,
		&article.Votes,
		&article.ImageURL,
		&article.CommentCount,
	); err != nil {
		return models.Article{}, xerrors.New(err)
	}
	return article, nil
}

func scanArticle(rows *sql.Rows) (models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&article.Body,
		&article.Topic,
		&article.CreatedAt,
		&article.Votes,
		&article.ImageURL,
		&article.CommentCount,
	); err != nil {
		return models.Article{}, xerrors.New(err)
	}
	return article, nil
}

// GetArticles lists articles without their bodies. Keys of q.Equals outside the
// filter allow-list are ignored, so an unknown topic or author yields an empty
// slice rather than an error.
func (c *Core) GetArticles(ctx context.Context, q filter.ArticleQuery) ([]models.Article, filter.Metadata, error) {
	listSQL, listArgs := filter.BuildArticleList(q)
	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, listSQL, scanArticleSummary, listArgs...)
	if err != nil {
		return nil, filter.Metadata{}, translateDBError(err)
	}

	countSQL, countArgs := filter.BuildArticleCount(q)
	total, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, countSQL, func(rows *sql.Rows) (int64, error) {
		var n int64
		if err := rows.Scan(&n); err != nil {
			return 0, xerrors.New(err)
		}
		return n, nil
	}, countArgs...)
	if err != nil {
		return nil, filter.Metadata{}, translateDBError(err)
	}

	return articles, filter.Metadata{TotalCount: total}, nil
}

func (c *Core) GetArticleByID(ctx context.Context, articleID int64) (*models.Article, error) {
	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, selectArticleSQL, scanArticle, articleID)
	if err != nil {
		return nil, translateDBError(err)
	}
	return &article, nil
}

func (c *Core) articleExists(ctx context.Context, articleID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)`

	exists, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, articleID)
	if err != nil {
		return false, translateDBError(err)
	}
	return exists, nil
}
