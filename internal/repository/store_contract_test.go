package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookshelf/internal/model"
)

// runBookStoreContract exercises the behavior every BookStore driver shares.
// checkMalformedID asserts the driver's failure for a lookup by a malformed
// id, which differs between typed and untyped id columns.
func runBookStoreContract(t *testing.T, newStore func(t *testing.T) BookStore, checkMalformedID func(t *testing.T, err error)) {
	t.Run("find on empty store returns empty slice", func(t *testing.T) {
		store := newStore(t)

		books, err := store.Find(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("create then find by id", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "Dune", "Herbert", "1965")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, store.IsValidID(created.ID))
		assert.Equal(t, 1965, created.PublishYear)
		assert.False(t, created.CreatedAt.IsZero())

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Dune", found.Title)
		assert.Equal(t, "Herbert", found.Author)
		assert.Equal(t, 1965, found.PublishYear)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("create rejects a publish year that cannot be cast", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Create(context.Background(), "Dune", "Herbert", "sometime")
		require.Error(t, err)

		var castErr *CastError
		require.ErrorAs(t, err, &castErr)
		assert.Equal(t, "publishYear", castErr.Path)
		assert.Contains(t, err.Error(), `Cast to Number failed for value "sometime"`)

		books, err := store.Find(context.Background())
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("publish year beyond 32 bits round-trips", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "Far Future", "Someone", "3000000000")
		require.NoError(t, err)
		assert.Equal(t, 3000000000, created.PublishYear)

		year := -3000000000
		updated, err := store.FindByIDAndUpdate(ctx, created.ID, model.BookPatch{PublishYear: &year})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, -3000000000, updated.PublishYear)
	})

	t.Run("find keeps insertion order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		titles := []string{"Dune", "Emma", "Ulysses", "Beloved"}
		for _, title := range titles {
			_, err := store.Create(ctx, title, "someone", "1900")
			require.NoError(t, err)
		}

		books, err := store.Find(ctx)
		require.NoError(t, err)
		require.Len(t, books, len(titles))
		for i, title := range titles {
			assert.Equal(t, title, books[i].Title)
		}
	})

	t.Run("find by unknown id", func(t *testing.T) {
		store := newStore(t)

		found, err := store.FindByID(context.Background(), "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find by malformed id is a store error", func(t *testing.T) {
		store := newStore(t)

		found, err := store.FindByID(context.Background(), "not-an-id")
		require.Error(t, err)
		assert.Nil(t, found)
		checkMalformedID(t, err)
	})

	t.Run("update applies the patch and returns the new state", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "Dune", "Herbert", "1965")
		require.NoError(t, err)

		year := 1966
		updated, err := store.FindByIDAndUpdate(ctx, created.ID, model.BookPatch{PublishYear: &year})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 1966, updated.PublishYear)
		assert.Equal(t, "Dune", updated.Title)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1966, found.PublishYear)
	})

	t.Run("update of unknown id", func(t *testing.T) {
		store := newStore(t)

		title := "Dune"
		updated, err := store.FindByIDAndUpdate(context.Background(), "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e", model.BookPatch{Title: &title})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete returns the last state and removes the record", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first, err := store.Create(ctx, "Dune", "Herbert", "1965")
		require.NoError(t, err)
		second, err := store.Create(ctx, "Emma", "Austen", "1815")
		require.NoError(t, err)

		deleted, err := store.FindByIDAndDelete(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "Dune", deleted.Title)

		found, err := store.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		books, err := store.Find(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, second.ID, books[0].ID)

		again, err := store.FindByIDAndDelete(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("concurrent creates", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Create(ctx, "Dune", "Herbert", "1965")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		books, err := store.Find(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 20)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(context.Background()))
	})
}

// requireIDCastError is the malformed id failure of drivers without a typed
// id column.
func requireIDCastError(t *testing.T, err error) {
	t.Helper()

	var castErr *CastError
	require.ErrorAs(t, err, &castErr)
	assert.Equal(t, `Cast to UUID failed for value "not-an-id" at path "_id"`, err.Error())
}

func TestMemoryBookStore(t *testing.T) {
	runBookStoreContract(t, func(t *testing.T) BookStore {
		return NewMemoryBookStore()
	}, requireIDCastError)
}

func TestCastPublishYear(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "1965", want: 1965},
		{raw: " 1965 ", want: 1965},
		{raw: "-44", want: -44},
		{raw: "1965.0", want: 1965},
		{raw: "3000000000.0", want: 3000000000},
		{raw: "1965.5", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "soon", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := castPublishYear(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
