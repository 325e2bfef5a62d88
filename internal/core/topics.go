package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func (c *Core) GetTopics(ctx context.Context) ([]models.Topic, error) {
	const query = `SELECT slug, description FROM topics`

	topics, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (models.Topic, error) {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return models.Topic{}, xerrors.New(err)
		}
		return topic, nil
	})
	if err != nil {
		return nil, translateDBError(err)
	}

	return topics, nil
}
