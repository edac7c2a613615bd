package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/lib/job"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/sqlerr"
)

// BookEventPublisher receives book lifecycle events. *job.JobService
// implements it.
type BookEventPublisher interface {
	EnqueueBookEvent(ctx context.Context, event job.BookEvent, bookID, title string) error
}

// BookService runs the book operations against a BookStore. It holds no
// state of its own between calls.
type BookService struct {
	store  repository.BookStore
	events BookEventPublisher
	logger *zerolog.Logger
}

// NewBookService builds a BookService. events may be nil.
func NewBookService(store repository.BookStore, events BookEventPublisher, logger *zerolog.Logger) *BookService {
	return &BookService{
		store:  store,
		events: events,
		logger: logger,
	}
}

// List returns every book in store order.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.store.Find(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

// Create persists a validated create request with trimmed fields.
func (s *BookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	book, err := s.store.Create(ctx,
		req.Title.Trimmed(),
		req.Author.Trimmed(),
		req.PublishYear.Trimmed(),
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	s.publish(ctx, job.BookCreated, book)

	return book, nil
}

// GetByID returns the book at id, or nil when there is none. The id is
// handed to the store unchecked.
func (s *BookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return book, nil
}

// Update overwrites title, author and publishYear of the book at id and
// returns the updated record.
func (s *BookService) Update(ctx context.Context, req *model.UpdateBookRequest) (*model.Book, error) {
	if !s.store.IsValidID(req.ID) {
		return nil, errs.NewInvalidIdentifierError()
	}

	patch, err := updatePatch(req)
	if err != nil {
		return nil, err
	}

	book, err := s.store.FindByIDAndUpdate(ctx, req.ID, patch)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if book == nil {
		return nil, errs.NewBookNotFoundError()
	}

	s.publish(ctx, job.BookUpdated, book)

	return book, nil
}

// Delete removes the book at id and returns its last state.
func (s *BookService) Delete(ctx context.Context, id string) (*model.Book, error) {
	if !s.store.IsValidID(id) {
		return nil, errs.NewInvalidIdentifierError()
	}

	book, err := s.store.FindByIDAndDelete(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if book == nil {
		return nil, errs.NewBookNotFoundError()
	}

	s.publish(ctx, job.BookDeleted, book)

	return book, nil
}

// updatePatch turns a validated update request into a patch. Empty fields
// are left out.
func updatePatch(req *model.UpdateBookRequest) (model.BookPatch, error) {
	var patch model.BookPatch

	if title := req.Title.Trimmed(); title != "" {
		patch.Title = &title
	}
	if author := req.Author.Trimmed(); author != "" {
		patch.Author = &author
	}
	if raw := req.PublishYear.String(); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return patch, errs.ValidationError([]errs.FieldError{
				{Field: "publishYear", Error: model.MsgPublishYearInvalid},
			})
		}
		patch.PublishYear = &year
	}

	return patch, nil
}

// publish hands a book event to the job queue. Failures are logged only.
func (s *BookService) publish(ctx context.Context, event job.BookEvent, book *model.Book) {
	if s.events == nil || book == nil {
		return
	}

	if err := s.events.EnqueueBookEvent(ctx, event, book.ID, book.Title); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event", string(event)).
			Str("book_id", book.ID).
			Msg("failed to enqueue book event")
	}
}

// Ping checks that the store is reachable.
func (s *BookService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
