package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/bookshelf/internal/model"
)

const (
	dialectPostgres = "postgres"
	tableBooks      = "books"
	colSeq          = "seq"
	colID           = "id"
	colTitle        = "title"
	colAuthor       = "author"
	colPublishYear  = "publish_year"
	colCreatedAt    = "created_at"
	colUpdatedAt    = "updated_at"
)

var bookColumns = []any{colID, colTitle, colAuthor, colPublishYear, colCreatedAt, colUpdatedAt}

// PostgresBookStore keeps books in the `books` table.
//
// Statements are built with goqu in prepared mode and run on the pgx pool.
// Insertion order is the identity column seq; timestamps come from the
// driver clock like in the other stores.
// The id column is a UUID, so a malformed id on lookup fails inside Postgres
// and surfaces as a store error.
type PostgresBookStore struct {
	pool    *pgxpool.Pool
	builder goqu.DialectWrapper
}

// NewPostgresBookStore constructs a PostgresBookStore on an open pool.
func NewPostgresBookStore(pool *pgxpool.Pool) *PostgresBookStore {
	return &PostgresBookStore{
		pool:    pool,
		builder: goqu.Dialect(dialectPostgres),
	}
}

func (s *PostgresBookStore) buildFindQuery() (string, []any, error) {
	return s.builder.
		From(tableBooks).
		Prepared(true).
		Select(bookColumns...).
		Order(goqu.I(colSeq).Asc()).
		ToSQL()
}

func (s *PostgresBookStore) buildFindByIDQuery(id string) (string, []any, error) {
	return s.builder.
		From(tableBooks).
		Prepared(true).
		Select(bookColumns...).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
}

func (s *PostgresBookStore) buildInsertQuery(book model.Book) (string, []any, error) {
	return s.builder.
		Insert(tableBooks).
		Prepared(true).
		Rows(goqu.Record{
			colID:          book.ID,
			colTitle:       book.Title,
			colAuthor:      book.Author,
			colPublishYear: book.PublishYear,
			colCreatedAt:   book.CreatedAt,
			colUpdatedAt:   book.UpdatedAt,
		}).
		Returning(bookColumns...).
		ToSQL()
}

func (s *PostgresBookStore) buildUpdateQuery(id string, patch model.BookPatch) (string, []any, error) {
	record := goqu.Record{colUpdatedAt: now()}
	if patch.Title != nil {
		record[colTitle] = *patch.Title
	}
	if patch.Author != nil {
		record[colAuthor] = *patch.Author
	}
	if patch.PublishYear != nil {
		record[colPublishYear] = *patch.PublishYear
	}

	return s.builder.
		Update(tableBooks).
		Prepared(true).
		Set(record).
		Where(goqu.C(colID).Eq(id)).
		Returning(bookColumns...).
		ToSQL()
}

func (s *PostgresBookStore) buildDeleteQuery(id string) (string, []any, error) {
	return s.builder.
		Delete(tableBooks).
		Prepared(true).
		Where(goqu.C(colID).Eq(id)).
		Returning(bookColumns...).
		ToSQL()
}

func (s *PostgresBookStore) Find(ctx context.Context) ([]model.Book, error) {
	query, args, err := s.buildFindQuery()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}

	if books == nil {
		books = []model.Book{}
	}

	return books, nil
}

func (s *PostgresBookStore) Create(ctx context.Context, title, author, publishYear string) (*model.Book, error) {
	year, err := castPublishYear(publishYear)
	if err != nil {
		return nil, err
	}

	createdAt := now()
	query, args, err := s.buildInsertQuery(model.Book{
		ID:          newID(),
		Title:       title,
		Author:      author,
		PublishYear: year,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	return s.queryOne(ctx, query, args)
}

func (s *PostgresBookStore) FindByID(ctx context.Context, id string) (*model.Book, error) {
	query, args, err := s.buildFindByIDQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return s.queryOne(ctx, query, args)
}

func (s *PostgresBookStore) FindByIDAndUpdate(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	query, args, err := s.buildUpdateQuery(id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return s.queryOne(ctx, query, args)
}

func (s *PostgresBookStore) FindByIDAndDelete(ctx context.Context, id string) (*model.Book, error) {
	query, args, err := s.buildDeleteQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	return s.queryOne(ctx, query, args)
}

// queryOne runs a statement returning at most one book; no row is (nil, nil).
// Driver errors are returned unwrapped so their message reaches the client as-is.
func (s *PostgresBookStore) queryOne(ctx context.Context, query string, args []any) (*model.Book, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	book, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Book])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return book, nil
}

func (s *PostgresBookStore) IsValidID(id string) bool {
	return isValidID(id)
}

func (s *PostgresBookStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
