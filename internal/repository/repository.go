// Package repository handles all interactions with the book store.
//
// BookStore is the document-store client the service layer consumes. It is
// implemented three times: on PostgreSQL (pgx + goqu), on Redis (one JSON
// document per book) and in memory.
package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/validation"
	"github.com/google/uuid"
)

// BookStore is the persistence contract of the books collection.
//
// FindByID, FindByIDAndUpdate and FindByIDAndDelete return (nil, nil) when no
// record exists at id. Any returned error is a store failure.
type BookStore interface {
	// Find returns every book in insertion order. Never nil.
	Find(ctx context.Context) ([]model.Book, error)

	// Create stores a new book. publishYear arrives as text and is cast to an
	// integer by the store; a value that cannot be cast is a *CastError.
	Create(ctx context.Context, title, author, publishYear string) (*model.Book, error)

	FindByID(ctx context.Context, id string) (*model.Book, error)

	// FindByIDAndUpdate applies patch and returns the record after the update.
	FindByIDAndUpdate(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error)

	// FindByIDAndDelete removes the record and returns its last state.
	FindByIDAndDelete(ctx context.Context, id string) (*model.Book, error)

	// IsValidID reports whether id has the store's canonical identifier format.
	IsValidID(id string) bool

	// Ping checks connectivity, for health reporting.
	Ping(ctx context.Context) error
}

// CastError is returned when a value cannot be converted to the type the
// store keeps at Path.
type CastError struct {
	Kind  string
	Value string
	Path  string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("Cast to %s failed for value %q at path %q", e.Kind, e.Value, e.Path)
}

// newID generates the identifier of a new book.
func newID() string {
	return uuid.New().String()
}

// isValidID is the identifier check shared by every driver.
func isValidID(id string) bool {
	return validation.IsValidUUID(id)
}

// idCastError is what drivers without a typed id column report for a
// malformed id on lookup.
func idCastError(id string) error {
	return &CastError{Kind: "UUID", Value: id, Path: "_id"}
}

// castPublishYear converts the raw publish year to an int. Integral decimal
// forms ("1965.0") are accepted.
func castPublishYear(raw string) (int, error) {
	value := strings.TrimSpace(raw)

	if year, err := strconv.Atoi(value); err == nil {
		return year, nil
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil && f == math.Trunc(f) &&
		math.Abs(f) <= 1<<53 {
		return int(f), nil
	}

	return 0, fmt.Errorf("book validation failed: publishYear: %w",
		&CastError{Kind: "Number", Value: raw, Path: "publishYear"})
}

// now is the clock of the drivers, truncated to what every backend can
// round-trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
