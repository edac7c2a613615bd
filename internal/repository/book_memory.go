package repository

import (
	"context"
	"sync"

	"github.com/deppfellow/bookshelf/internal/model"
)

// MemoryBookStore keeps books in process memory.
type MemoryBookStore struct {
	mu    sync.RWMutex
	books map[string]model.Book
	order []string
}

// NewMemoryBookStore constructs an empty MemoryBookStore.
func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{
		books: make(map[string]model.Book),
	}
}

func (s *MemoryBookStore) Find(_ context.Context) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Book, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.books[id])
	}

	return result, nil
}

func (s *MemoryBookStore) Create(_ context.Context, title, author, publishYear string) (*model.Book, error) {
	year, err := castPublishYear(publishYear)
	if err != nil {
		return nil, err
	}

	createdAt := now()
	book := model.Book{
		ID:          newID(),
		Title:       title,
		Author:      author,
		PublishYear: year,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.ID] = book
	s.order = append(s.order, book.ID)

	return &book, nil
}

func (s *MemoryBookStore) FindByID(_ context.Context, id string) (*model.Book, error) {
	if !isValidID(id) {
		return nil, idCastError(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}

	return &book, nil
}

func (s *MemoryBookStore) FindByIDAndUpdate(_ context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}

	patch.Apply(&book)
	book.UpdatedAt = now()
	s.books[id] = book

	return &book, nil
}

func (s *MemoryBookStore) FindByIDAndDelete(_ context.Context, id string) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}

	delete(s.books, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return &book, nil
}

func (s *MemoryBookStore) IsValidID(id string) bool {
	return isValidID(id)
}

func (s *MemoryBookStore) Ping(_ context.Context) error {
	return nil
}
