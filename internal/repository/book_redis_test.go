package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisBookStore(t *testing.T) (*RedisBookStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBookStore(client, ""), mr
}

func TestRedisBookStore(t *testing.T) {
	runBookStoreContract(t, func(t *testing.T) BookStore {
		store, _ := newTestRedisBookStore(t)
		return store
	}, requireIDCastError)
}

func TestRedisBookStore_KeyLayout(t *testing.T) {
	store, mr := newTestRedisBookStore(t)

	book, err := store.Create(context.Background(), "Dune", "Herbert", "1965")
	require.NoError(t, err)

	assert.True(t, mr.Exists("bookshelf:books:"+book.ID))

	members, err := mr.ZMembers("bookshelf:books:index")
	require.NoError(t, err)
	assert.Equal(t, []string{book.ID}, members)

	raw, err := mr.Get("bookshelf:books:" + book.ID)
	require.NoError(t, err)
	assert.Contains(t, raw, `"_id":"`+book.ID+`"`)
	assert.Contains(t, raw, `"publishYear":1965`)
}

func TestRedisBookStore_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisBookStore(client, "test:")
	book, err := store.Create(context.Background(), "Dune", "Herbert", "1965")
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:books:"+book.ID))
}

func TestRedisBookStore_FindSkipsDocumentsDeletedOutOfBand(t *testing.T) {
	store, mr := newTestRedisBookStore(t)
	ctx := context.Background()

	gone, err := store.Create(ctx, "Dune", "Herbert", "1965")
	require.NoError(t, err)
	kept, err := store.Create(ctx, "Emma", "Austen", "1815")
	require.NoError(t, err)

	mr.Del("bookshelf:books:" + gone.ID)

	books, err := store.Find(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, kept.ID, books[0].ID)
}

func TestRedisBookStore_StoreFailure(t *testing.T) {
	store, mr := newTestRedisBookStore(t)
	mr.Close()

	_, err := store.Find(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}

func TestRedisBookStore_DeleteDropsDocumentAndIndexTogether(t *testing.T) {
	store, mr := newTestRedisBookStore(t)
	ctx := context.Background()

	book, err := store.Create(ctx, "Dune", "Herbert", "1965")
	require.NoError(t, err)

	deleted, err := store.FindByIDAndDelete(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, book.ID, deleted.ID)

	assert.False(t, mr.Exists("bookshelf:books:"+book.ID))
	members, _ := mr.ZMembers("bookshelf:books:index")
	assert.NotContains(t, members, book.ID)
}

func TestRedisBookStore_DeleteClearsOrphanIndexEntry(t *testing.T) {
	store, mr := newTestRedisBookStore(t)
	ctx := context.Background()

	book, err := store.Create(ctx, "Dune", "Herbert", "1965")
	require.NoError(t, err)
	mr.Del("bookshelf:books:" + book.ID)

	deleted, err := store.FindByIDAndDelete(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	members, _ := mr.ZMembers("bookshelf:books:index")
	assert.NotContains(t, members, book.ID)
}

func TestRedisBookStore_DeleteFailure(t *testing.T) {
	store, mr := newTestRedisBookStore(t)
	mr.Close()

	_, err := store.FindByIDAndDelete(context.Background(), "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete book")
}
