package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleBookEventTask writes the audit line of a book event.
func (j *JobService) handleBookEventTask(_ context.Context, t *asynq.Task) error {
	var p BookEventPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal book event payload: %w", err)
	}

	if p.BookID == "" {
		return fmt.Errorf("book event %q has no book id: %w", p.Event, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskBookEvent).
		Str("event", string(p.Event)).
		Str("book_id", p.BookID).
		Str("title", p.Title).
		Time("occurred_at", p.OccurredAt).
		Msg("book event")

	return nil
}
