package repository

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/bookshelf/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultRedisPrefix namespaces the keys of RedisBookStore.
const DefaultRedisPrefix = "bookshelf:"

// RedisBookStore keeps each book as a JSON document under <prefix>books:<id>.
//
// Insertion order lives in a sorted set scored by an INCR sequence, so Find
// returns books in the order they were created.
type RedisBookStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBookStore constructs a RedisBookStore. An empty prefix means
// DefaultRedisPrefix.
func NewRedisBookStore(client redis.UniversalClient, prefix string) *RedisBookStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisBookStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisBookStore) bookKey(id string) string {
	return s.prefix + "books:" + id
}

func (s *RedisBookStore) indexKey() string {
	return s.prefix + "books:index"
}

func (s *RedisBookStore) sequenceKey() string {
	return s.prefix + "books:seq"
}

func (s *RedisBookStore) Find(ctx context.Context) ([]model.Book, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read book index: %w", err)
	}

	books := make([]model.Book, 0, len(ids))
	if len(ids) == 0 {
		return books, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.bookKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	for _, value := range values {
		// Deleted between ZRANGE and MGET.
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var book model.Book
		if err := json.UnmarshalFromString(raw, &book); err != nil {
			return nil, fmt.Errorf("failed to decode book: %w", err)
		}
		books = append(books, book)
	}

	return books, nil
}

func (s *RedisBookStore) Create(ctx context.Context, title, author, publishYear string) (*model.Book, error) {
	year, err := castPublishYear(publishYear)
	if err != nil {
		return nil, err
	}

	createdAt := now()
	book := &model.Book{
		ID:          newID(),
		Title:       title,
		Author:      author,
		PublishYear: year,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	data, err := json.Marshal(book)
	if err != nil {
		return nil, fmt.Errorf("failed to encode book: %w", err)
	}

	seq, err := s.client.Incr(ctx, s.sequenceKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate book sequence: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.bookKey(book.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(seq), Member: book.ID})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store book: %w", err)
	}

	return book, nil
}

func (s *RedisBookStore) FindByID(ctx context.Context, id string) (*model.Book, error) {
	if !isValidID(id) {
		return nil, idCastError(id)
	}

	return s.get(ctx, id)
}

func (s *RedisBookStore) get(ctx context.Context, id string) (*model.Book, error) {
	raw, err := s.client.Get(ctx, s.bookKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read book: %w", err)
	}

	var book model.Book
	if err := json.UnmarshalFromString(raw, &book); err != nil {
		return nil, fmt.Errorf("failed to decode book: %w", err)
	}

	return &book, nil
}

// FindByIDAndUpdate reads the document, applies the patch and writes it back
// with SET XX. No WATCH: concurrent updates are last-writer-wins, and a
// delete that lands in between makes this report not-found.
func (s *RedisBookStore) FindByIDAndUpdate(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	book, err := s.get(ctx, id)
	if err != nil || book == nil {
		return nil, err
	}

	patch.Apply(book)
	book.UpdatedAt = now()

	data, err := json.Marshal(book)
	if err != nil {
		return nil, fmt.Errorf("failed to encode book: %w", err)
	}

	written, err := s.client.SetXX(ctx, s.bookKey(id), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	if !written {
		return nil, nil
	}

	return book, nil
}

// FindByIDAndDelete removes the document and its index entry in one
// MULTI/EXEC, so the index never outlives the document.
func (s *RedisBookStore) FindByIDAndDelete(ctx context.Context, id string) (*model.Book, error) {
	var getDel *redis.StringCmd

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		getDel = pipe.GetDel(ctx, s.bookKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	raw, err := getDel.Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	var book model.Book
	if err := json.UnmarshalFromString(raw, &book); err != nil {
		return nil, fmt.Errorf("failed to decode book: %w", err)
	}

	return &book, nil
}

func (s *RedisBookStore) IsValidID(id string) bool {
	return isValidID(id)
}

func (s *RedisBookStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
