package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	txutil "bookreview-backend/pkg/database"
	"bookreview-backend/pkg/logger"
)

// Migration là một bước schema, áp dụng đúng một lần theo Version
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

// Migrations là toàn bộ schema của service, theo thứ tự version tăng dần.
// reviews_user_book_key là constraint giữ invariant một review cho mỗi (user, book).
var Migrations = []Migration{
	{
		Version:     1,
		Description: "create users table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id            UUID PRIMARY KEY,
				username      TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				email         TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT users_username_key UNIQUE (username),
				CONSTRAINT users_email_key UNIQUE (email)
			)`,
		},
	},
	{
		Version:     2,
		Description: "create books table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS books (
				id               UUID PRIMARY KEY,
				title            VARCHAR(256) NOT NULL,
				description      VARCHAR(500),
				author           VARCHAR(50),
				genre            VARCHAR(15),
				publication_date DATE,
				image_link       TEXT,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT books_title_key UNIQUE (title)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_books_author ON books (author)`,
			`CREATE INDEX IF NOT EXISTS idx_books_genre ON books (genre)`,
		},
	},
	{
		Version:     3,
		Description: "create reviews table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS reviews (
				id         UUID PRIMARY KEY,
				user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				book_id    UUID NOT NULL REFERENCES books (id) ON DELETE CASCADE,
				rating     SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
				content    VARCHAR(500) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT reviews_user_book_key UNIQUE (user_id, book_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews (book_id, id)`,
		},
	},
}

// Migrate áp dụng các migration chưa chạy, tất cả trong một transaction.
// Trả về số migration vừa được áp dụng.
func Migrate(ctx context.Context, db txutil.TxBeginner) (int, error) {
	log := logger.Component("migrate")

	return txutil.WithTransactionResult(ctx, db, func(tx pgx.Tx) (int, error) {
		if _, err := tx.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
			return 0, fmt.Errorf("create schema_migrations: %w", err)
		}

		// Serialize concurrent migrators (vd: nhiều instance start cùng lúc)
		if _, err := tx.Exec(ctx, `LOCK TABLE schema_migrations IN EXCLUSIVE MODE`); err != nil {
			return 0, fmt.Errorf("lock schema_migrations: %w", err)
		}

		applied := 0
		for _, m := range Migrations {
			var exists bool
			err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version,
			).Scan(&exists)
			if err != nil {
				return 0, fmt.Errorf("check migration %d: %w", m.Version, err)
			}
			if exists {
				continue
			}

			for _, stmt := range m.Statements {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return 0, fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
				}
			}

			if _, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version,
			); err != nil {
				return 0, fmt.Errorf("record migration %d: %w", m.Version, err)
			}

			log.Info().Int("version", m.Version).Str("description", m.Description).Msg("migration applied")
			applied++
		}

		return applied, nil
	})
}
