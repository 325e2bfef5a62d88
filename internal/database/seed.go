package database

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/utils/collectionutils"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

//go:embed seed/*.json
var seedFS embed.FS

type SeedArticle struct {
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Votes     int64     `json:"votes"`
	ImageURL  string    `json:"article_img_url"`
}

// SeedComment references its article by title; ids are only known after the
// articles are inserted.
type SeedComment struct {
	Body         string    `json:"body"`
	ArticleTitle string    `json:"article_title"`
	Author       string    `json:"author"`
	Votes        int64     `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
}

type Dataset struct {
	Topics   []models.Topic
	Users    []models.User
	Articles []SeedArticle
	Comments []SeedComment
}

// LoadDataset decodes the embedded development/test dataset.
func LoadDataset() (*Dataset, error) {
	dataset := &Dataset{}
	files := []struct {
		name string
		dst  any
	}{
		{"seed/topics.json", &dataset.Topics},
		{"seed/users.json", &dataset.Users},
		{"seed/articles.json", &dataset.Articles},
		{"seed/comments.json", &dataset.Comments},
	}

	for _, f := range files {
		raw, err := seedFS.ReadFile(f.name)
		if err != nil {
			return nil, xerrors.New(err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, xerrors.Newf("database: decoding %s: %w", f.name, err)
		}
	}

	return dataset, nil
}

// Seed truncates every table and loads dataset in a single transaction.
func Seed(ctx context.Context, db *sql.DB, dataset *Dataset, log *slog.Logger) error {
	session := databaseutils.NewSession(db)

	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		tx := databaseutils.GetSQLExecutor(txCtx, db)

		if _, err := tx.ExecContext(txCtx, `TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`); err != nil {
			return xerrors.New(err)
		}

		for _, topic := range dataset.Topics {
			if _, err := tx.ExecContext(txCtx, `INSERT INTO topics (slug, description) VALUES ($1, $2)`,
				topic.Slug, topic.Description); err != nil {
				return xerrors.Newf("database: seeding topic %q: %w", topic.Slug, err)
			}
		}

		for _, user := range dataset.Users {
			if _, err := tx.ExecContext(txCtx, `INSERT INTO users (username, name, avatar_url) VALUES ($1, $2, $3)`,
				user.Username, user.Name, user.AvatarURL); err != nil {
				return xerrors.Newf("database: seeding user %q: %w", user.Username, err)
			}
		}

		type insertedArticle struct {
			id    int64
			title string
		}
		inserted := make([]insertedArticle, 0, len(dataset.Articles))
		for _, article := range dataset.Articles {
			var id int64
			err := tx.QueryRowContext(txCtx, `
				INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING article_id`,
				article.Title, article.Topic, article.Author, article.Body, article.CreatedAt, article.Votes, article.ImageURL,
			).Scan(&id)
			if err != nil {
				return xerrors.Newf("database: seeding article %q: %w", article.Title, err)
			}
			inserted = append(inserted, insertedArticle{id: id, title: article.Title})
		}

		articleIDByTitle := collectionutils.Associate(inserted, func(a insertedArticle) (string, int64) {
			return a.title, a.id
		})

		for _, comment := range dataset.Comments {
			articleID, ok := articleIDByTitle[comment.ArticleTitle]
			if !ok {
				return xerrors.Newf("database: comment references unknown article %q", comment.ArticleTitle)
			}
			if _, err := tx.ExecContext(txCtx, `
				INSERT INTO comments (body, article_id, author, votes, created_at)
				VALUES ($1, $2, $3, $4, $5)`,
				comment.Body, articleID, comment.Author, comment.Votes, comment.CreatedAt); err != nil {
				return xerrors.Newf("database: seeding comment on %q: %w", comment.ArticleTitle, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Database seeded",
		slog.Int("topics", len(dataset.Topics)),
		slog.Int("users", len(dataset.Users)),
		slog.Int("articles", len(dataset.Articles)),
		slog.Int("comments", len(dataset.Comments)),
	)
	return nil
}
