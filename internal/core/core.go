package core

import (
	"database/sql"
	"log/slog"

	"github.com/siahsang/news/internal/utils/databaseutils"
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
		session:     databaseutils.NewSession(dbConn),
	}
}
