package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/lib/job"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/validation"
)

const unknownID = "3f2b8e2c-1d4a-4c55-9a0e-6a1f1c2b3d4e"

type recordedEvent struct {
	event  job.BookEvent
	bookID string
	title  string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *fakePublisher) EnqueueBookEvent(_ context.Context, event job.BookEvent, bookID, title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{event: event, bookID: bookID, title: title})
	return p.err
}

// failingStore fails every call with the same error.
type failingStore struct {
	repository.BookStore
	err error
}

func (s failingStore) Find(context.Context) ([]model.Book, error) { return nil, s.err }
func (s failingStore) FindByID(context.Context, string) (*model.Book, error) {
	return nil, s.err
}

func newTestBookService(t *testing.T) (*BookService, *fakePublisher) {
	t.Helper()
	logger := zerolog.Nop()
	publisher := &fakePublisher{}
	return NewBookService(repository.NewMemoryBookStore(), publisher, &logger), publisher
}

func createRequest(title, author, year string) *model.CreateBookRequest {
	return &model.CreateBookRequest{Title: validation.FieldValue(title), Author: validation.FieldValue(author), PublishYear: validation.FieldValue(year)}
}

func updateRequest(id, title, author, year string) *model.UpdateBookRequest {
	return &model.UpdateBookRequest{ID: id, Title: validation.FieldValue(title), Author: validation.FieldValue(author), PublishYear: validation.FieldValue(year)}
}

func requireHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
	return httpErr
}

func TestBookService_ListEmpty(t *testing.T) {
	svc, _ := newTestBookService(t)

	books, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestBookService_CreateTrimsAndPublishes(t *testing.T) {
	svc, publisher := newTestBookService(t)

	book, err := svc.Create(context.Background(), createRequest("  Dune ", " Herbert", " 1965 "))
	require.NoError(t, err)

	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, 1965, book.PublishYear)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, recordedEvent{event: job.BookCreated, bookID: book.ID, title: "Dune"}, publisher.events[0])
}

func TestBookService_CreateUncastableYearIsStoreError(t *testing.T) {
	svc, publisher := newTestBookService(t)

	_, err := svc.Create(context.Background(), createRequest("Dune", "Herbert", "nineteen"))
	httpErr := requireHTTPError(t, err, http.StatusInternalServerError, errs.CodeStoreError)
	assert.Contains(t, httpErr.Message, "Cast to Number failed")
	assert.Empty(t, publisher.events)
}

func TestBookService_CreatePublishFailureIsIgnored(t *testing.T) {
	svc, publisher := newTestBookService(t)
	publisher.err = errors.New("redis down")

	book, err := svc.Create(context.Background(), createRequest("Dune", "Herbert", "1965"))
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
}

func TestBookService_GetByID(t *testing.T) {
	svc, _ := newTestBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("Dune", "Herbert", "1965"))
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	missing, err := svc.GetByID(ctx, unknownID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.GetByID(ctx, "abc")
	httpErr := requireHTTPError(t, err, http.StatusInternalServerError, errs.CodeStoreError)
	assert.Equal(t, `Cast to UUID failed for value "abc" at path "_id"`, httpErr.Message)
}

func TestBookService_Update(t *testing.T) {
	svc, publisher := newTestBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("Dune", "Herbert", "1965"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, updateRequest(created.ID, "Dune", "Frank Herbert ", "1966"))
	require.NoError(t, err)
	assert.Equal(t, 1966, updated.PublishYear)
	assert.Equal(t, "Frank Herbert", updated.Author)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, job.BookUpdated, publisher.events[1].event)
}

func TestBookService_UpdateErrors(t *testing.T) {
	svc, _ := newTestBookService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, updateRequest("abc", "Dune", "Herbert", "1966"))
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, errs.CodeInvalidBookID)
	assert.Equal(t, "Invalid book ID format", httpErr.Message)

	_, err = svc.Update(ctx, updateRequest(unknownID, "Dune", "Herbert", "1966"))
	httpErr = requireHTTPError(t, err, http.StatusNotFound, errs.CodeBookNotFound)
	assert.Equal(t, "Book not found", httpErr.Message)
}

func TestBookService_Delete(t *testing.T) {
	svc, publisher := newTestBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("Dune", "Herbert", "1965"))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, job.BookDeleted, publisher.events[len(publisher.events)-1].event)

	_, err = svc.Delete(ctx, created.ID)
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeBookNotFound)

	_, err = svc.Delete(ctx, "abc")
	requireHTTPError(t, err, http.StatusBadRequest, errs.CodeInvalidBookID)
}

func TestBookService_StoreFailures(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewBookService(failingStore{err: errors.New("connection refused")}, nil, &logger)

	_, err := svc.List(context.Background())
	httpErr := requireHTTPError(t, err, http.StatusInternalServerError, errs.CodeStoreError)
	assert.Equal(t, "connection refused", httpErr.Message)

	_, err = svc.GetByID(context.Background(), unknownID)
	requireHTTPError(t, err, http.StatusInternalServerError, errs.CodeStoreError)
}

func TestUpdatePatch(t *testing.T) {
	patch, err := updatePatch(updateRequest(unknownID, " Dune ", "Herbert", "+12"))
	require.NoError(t, err)

	require.NotNil(t, patch.Title)
	assert.Equal(t, "Dune", *patch.Title)
	require.NotNil(t, patch.PublishYear)
	assert.Equal(t, 12, *patch.PublishYear)
}
