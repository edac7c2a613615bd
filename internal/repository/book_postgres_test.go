package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookshelf/internal/database"
	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/sqlerr"
)

func TestPostgresBookStore_BuildFindQuery(t *testing.T) {
	store := NewPostgresBookStore(nil)

	query, args, err := store.buildFindQuery()
	require.NoError(t, err)

	assert.Contains(t, query, `FROM "books"`)
	assert.Contains(t, query, `"publish_year"`)
	assert.Contains(t, query, `ORDER BY "seq" ASC`)
	assert.NotContains(t, query, `"seq",`)
	assert.Empty(t, args)
}

func TestPostgresBookStore_BuildFindByIDQuery(t *testing.T) {
	store := NewPostgresBookStore(nil)
	id := "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e"

	query, args, err := store.buildFindByIDQuery(id)
	require.NoError(t, err)

	assert.Contains(t, query, `WHERE ("id" = $1)`)
	assert.Equal(t, []any{id}, args)
}

func TestPostgresBookStore_BuildInsertQuery(t *testing.T) {
	store := NewPostgresBookStore(nil)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := store.buildInsertQuery(model.Book{
		ID:          "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e",
		Title:       "Dune",
		Author:      "Herbert",
		PublishYear: 1965,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	require.NoError(t, err)

	assert.Contains(t, query, `INSERT INTO "books"`)
	assert.Contains(t, query, `RETURNING "id", "title", "author", "publish_year", "created_at", "updated_at"`)
	assert.Len(t, args, 6)
	assert.Contains(t, args, "Dune")
	assert.Contains(t, args, int64(1965))
}

func TestPostgresBookStore_BuildUpdateQuery(t *testing.T) {
	store := NewPostgresBookStore(nil)
	id := "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e"

	t.Run("only patched fields are set", func(t *testing.T) {
		title := "Dune Messiah"

		query, args, err := store.buildUpdateQuery(id, model.BookPatch{Title: &title})
		require.NoError(t, err)

		assert.Contains(t, query, `UPDATE "books" SET`)
		assert.Contains(t, query, `"title"`)
		assert.NotContains(t, query, `"author"=`)
		assert.NotContains(t, query, `"publish_year"=`)
		assert.Contains(t, query, `"updated_at"`)
		require.Len(t, args, 3)
		assert.Equal(t, title, args[0])
		assert.IsType(t, time.Time{}, args[1])
		assert.Equal(t, id, args[2])
	})

	t.Run("empty patch still bumps updated_at", func(t *testing.T) {
		query, args, err := store.buildUpdateQuery(id, model.BookPatch{})
		require.NoError(t, err)

		assert.Contains(t, query, `"updated_at"`)
		require.Len(t, args, 2)
		assert.IsType(t, time.Time{}, args[0])
		assert.Equal(t, id, args[1])
	})
}

func TestPostgresBookStore_BuildDeleteQuery(t *testing.T) {
	store := NewPostgresBookStore(nil)
	id := "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e"

	query, args, err := store.buildDeleteQuery(id)
	require.NoError(t, err)

	assert.Contains(t, query, `DELETE FROM "books"`)
	assert.Contains(t, query, `RETURNING`)
	assert.Equal(t, []any{id}, args)
}

// testDatabaseURLEnv names the connection string of a disposable database.
// The postgres driver tests are skipped without it.
const testDatabaseURLEnv = "BOOKSHELF_TEST_DATABASE_URL"

func newTestPostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(testDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping postgres driver tests", testDatabaseURLEnv)
	}

	ctx := context.Background()
	logger := zerolog.Nop()
	require.NoError(t, database.MigrateURL(ctx, &logger, dsn), "error migrating test database")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "error connecting to DB pool in test setup")
	t.Cleanup(pool.Close)

	return pool
}

func truncateBooks(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE books RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the books table")
}

func TestPostgresBookStore(t *testing.T) {
	pool := newTestPostgresPool(t)

	runBookStoreContract(t, func(t *testing.T) BookStore {
		truncateBooks(t, pool)
		return NewPostgresBookStore(pool)
	}, func(t *testing.T, err error) {
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "22P02", pgErr.Code)

		storeErr := sqlerr.HandleError(err)
		assert.ErrorIs(t, storeErr, errs.ErrStore)
		assert.Contains(t, storeErr.Error(), `invalid input syntax for type uuid: "not-an-id"`)
	})
}

func TestPostgresBookStore_ScansStoredRow(t *testing.T) {
	pool := newTestPostgresPool(t)
	truncateBooks(t, pool)

	store := NewPostgresBookStore(pool)
	ctx := context.Background()

	created, err := store.Create(ctx, "Dune", "Herbert", "1965.0")
	require.NoError(t, err)

	var raw string
	require.NoError(t, pool.QueryRow(ctx, "SELECT id::text FROM books WHERE title = $1", "Dune").Scan(&raw))
	assert.Equal(t, created.ID, raw)

	found, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1965, found.PublishYear)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(found.UpdatedAt))
}
