package job

import (
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TaskBookEvent is the asynq type of book lifecycle events.
const TaskBookEvent = "book:event"

// BookEvent names what happened to a book.
type BookEvent string

const (
	BookCreated BookEvent = "created"
	BookUpdated BookEvent = "updated"
	BookDeleted BookEvent = "deleted"
)

// BookEventPayload is the JSON body of a TaskBookEvent task.
type BookEventPayload struct {
	Event      BookEvent `json:"event"`
	BookID     string    `json:"book_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookEventTask builds a book event task on the low queue: retried three
// times, killed after thirty seconds.
func NewBookEventTask(event BookEvent, bookID, title string) (*asynq.Task, error) {
	payload, err := json.Marshal(BookEventPayload{
		Event:      event,
		BookID:     bookID,
		Title:      title,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBookEvent,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
