package cache

import (
	"context"

	"github.com/andymccutcheon/return-to-print/internal/model"
)

// RecentCache caches the recent-messages list. Get returns
// errs.ErrNoData on a miss. Submitting or printing a message must
// invalidate the cache before the caller returns, so a client's own
// write is visible to its next list call.
type RecentCache interface {
	Get(ctx context.Context) ([]model.Message, error)
	Set(ctx context.Context, messages []model.Message) error
	Invalidate(ctx context.Context) error
}
