package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/shared/utils"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/logger"
)

const (
	pgUniqueViolation = "23505"
	constraintTitle   = "books_title_key"

	bookCacheTTL = 10 * time.Minute
)

const bookColumns = `b.id, b.title, b.description, b.author, b.genre, b.publication_date, b.image_link, b.created_at`

// PostgresRepository - Concrete implementation
type PostgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &PostgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// CreateBook - INSERT, title unique do constraint đảm bảo
func (r *PostgresRepository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, description, author, genre, publication_date, image_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Description,
		book.Author,
		book.Genre,
		book.PublicationDate,
		book.ImageLink,
		book.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintTitle {
			return model.ErrTitleAlreadyExists
		}
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

// ListBooks - filter chính xác theo author/genre, phân trang bằng LIMIT/OFFSET
func (r *PostgresRepository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	where, args := buildFilter(filter)

	query := `SELECT ` + bookColumns + ` FROM books b` + where + ` ORDER BY b.id`
	query, args = appendPaging(query, args, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

// GetByID - Cache-Aside: book immutable nên cache không bao giờ stale
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := fmt.Sprintf("book:%s", id.String())

	var cached model.Book
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("book cache get failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}
	if err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books b WHERE b.id = $1`
	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, book, bookCacheTTL); err != nil {
		logger.Warn("book cache set failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}

	return book, nil
}

// SearchBooks - case-insensitive substring, OR khi có cả title và author
func (r *PostgresRepository) SearchBooks(ctx context.Context, title, author string) ([]model.Book, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if title != "" {
		args = append(args, utils.ContainsPattern(title))
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE $%d", len(args)))
	}
	if author != "" {
		args = append(args, utils.ContainsPattern(author))
		conditions = append(conditions, fmt.Sprintf("b.author ILIKE $%d", len(args)))
	}
	if len(conditions) == 0 {
		return []model.Book{}, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books b WHERE ` + utils.JoinWithOr(conditions) + ` ORDER BY b.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

// ListBookRatings - LEFT JOIN reviews, AVG NULL khi book chưa có review
func (r *PostgresRepository) ListBookRatings(ctx context.Context, filter model.BookFilter) ([]model.BookRating, error) {
	where, args := buildFilter(filter)

	query := `
		SELECT ` + bookColumns + `, COUNT(rv.id), AVG(rv.rating)
		FROM books b
		LEFT JOIN reviews rv ON rv.book_id = b.id` + where + `
		GROUP BY b.id
		ORDER BY b.id`
	query, args = appendPaging(query, args, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list book ratings: %w", err)
	}
	defer rows.Close()

	result := []model.BookRating{}
	for rows.Next() {
		var (
			br  model.BookRating
			avg decimal.NullDecimal
		)
		err := rows.Scan(
			&br.ID,
			&br.Title,
			&br.Description,
			&br.Author,
			&br.Genre,
			&br.PublicationDate,
			&br.ImageLink,
			&br.CreatedAt,
			&br.ReviewCount,
			&avg,
		)
		if err != nil {
			return nil, fmt.Errorf("scan book rating: %w", err)
		}
		br.AverageRating = utils.NullDecimalToFloat(avg)
		result = append(result, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book ratings: %w", err)
	}

	return result, nil
}

// ========================================
// HELPERS
// ========================================

func buildFilter(filter model.BookFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Author != "" {
		args = append(args, filter.Author)
		conditions = append(conditions, fmt.Sprintf("b.author = $%d", len(args)))
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conditions = append(conditions, fmt.Sprintf("b.genre = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(conditions), args
}

func appendPaging(query string, args []interface{}, filter model.BookFilter) (string, []interface{}) {
	if filter.Limit <= 0 {
		return query, args
	}
	args = append(args, filter.Limit, filter.Offset)
	return query + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.Author,
		&b.Genre,
		&b.PublicationDate,
		&b.ImageLink,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}
