package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bookreview-backend/internal/domains/review/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintUserBook = "reviews_user_book_key"
	constraintBookFK   = "reviews_book_id_fkey"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresRepository{pool: pool}
}

const reviewColumns = `id, user_id, book_id, rating, content, created_at, updated_at`

// =====================================================
// WRITE OPERATIONS
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, book_id, rating, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.BookID,
		review.Rating,
		review.Content,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}

	return nil
}

func (r *postgresRepository) UpdateByUserAndBook(
	ctx context.Context,
	userID, bookID uuid.UUID,
	rating int,
	content string,
) (*model.Review, error) {
	query := `
		UPDATE reviews
		SET rating = $3, content = $4, updated_at = NOW()
		WHERE user_id = $1 AND book_id = $2
		RETURNING ` + reviewColumns

	review, err := scanReview(r.pool.QueryRow(ctx, query, userID, bookID, rating, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	return review, nil
}

func (r *postgresRepository) DeleteByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM reviews WHERE user_id = $1 AND book_id = $2`,
		userID, bookID,
	)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// =====================================================
// READ OPERATIONS
// =====================================================

func (r *postgresRepository) ListByBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE book_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

func (r *postgresRepository) AverageRating(ctx context.Context, bookID uuid.UUID) (decimal.NullDecimal, error) {
	var avg decimal.NullDecimal

	// AVG trên tập rỗng trả về NULL
	err := r.pool.QueryRow(ctx,
		`SELECT AVG(rating) FROM reviews WHERE book_id = $1`,
		bookID,
	).Scan(&avg)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("average rating: %w", err)
	}

	return avg, nil
}

// =====================================================
// HELPERS
// =====================================================

func scanReview(row pgx.Row) (*model.Review, error) {
	var review model.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.BookID,
		&review.Rating,
		&review.Content,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// mapWriteError map constraint violation sang domain error
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintUserBook:
			return model.ErrAlreadyReviewed
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == constraintBookFK:
			return model.ErrBookNotFound
		}
	}
	return fmt.Errorf("insert review: %w", err)
}
