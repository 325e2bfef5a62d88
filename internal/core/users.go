package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func scanUser(rows *sql.Rows) (models.User, error) {
	var user models.User
	if err := rows.Scan(&user.Username, &user.Name, &user.AvatarURL); err != nil {
		return models.User{}, xerrors.New(err)
	}
	return user, nil
}

func (c *Core) GetUsers(ctx context.Context) ([]models.User, error) {
	const query = `SELECT username, name, avatar_url FROM users ORDER BY username`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser)
	if err != nil {
		return nil, translateDBError(err)
	}
	return users, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT username, name, avatar_url FROM users WHERE username = $1`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, username)
	if err != nil {
		return nil, translateDBError(err)
	}
	return &user, nil
}
