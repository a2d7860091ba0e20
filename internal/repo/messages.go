package repo

import (
	"context"

	"github.com/andymccutcheon/return-to-print/internal/model"
)

// MessageRepository is the durable message store. Implementations must
// tolerate concurrent callers: multiple clients submitting while the
// worker polls, with no coordination between them.
type MessageRepository interface {
	// Create persists a new message with a store-assigned id and
	// created_at, returning the full record with printed=false.
	Create(ctx context.Context, name, content string) (model.Message, error)

	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Message, error)

	// NextUnprinted returns the oldest message with printed=false, or
	// errs.ErrNoData if no pending message exists.
	NextUnprinted(ctx context.Context) (model.Message, error)

	// MarkPrinted sets printed=true and printed_at on first application.
	// It is idempotent: repeat calls with the same id succeed without
	// mutating the record again. Unknown ids succeed as well.
	MarkPrinted(ctx context.Context, id string) error
}
