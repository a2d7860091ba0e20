package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

// MemoryMessageRepo is an in-memory MessageRepository used by tests and
// local development. It keeps a FIFO of pending ids alongside the
// creation-ordered record list, so NextUnprinted never scans the whole
// table: printed ids are dropped from the front of the FIFO as they are
// encountered.
type MemoryMessageRepo struct {
	mu          sync.Mutex
	byID        map[string]*model.Message
	order       []string // creation order, oldest first
	pending     []string // unprinted ids in creation order, cleaned lazily
	lastCreated time.Time
}

func NewMemoryMessageRepo() *MemoryMessageRepo {
	return &MemoryMessageRepo{byID: map[string]*model.Message{}}
}

func (r *MemoryMessageRepo) Create(ctx context.Context, name, content string) (model.Message, error) {
	name, err := model.ValidateName(name)
	if err != nil {
		return model.Message{}, err
	}
	content, err = model.ValidateContent(content)
	if err != nil {
		return model.Message{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// created_at is the ordering key, so keep it strictly increasing
	// even when two submits land within clock resolution.
	now := time.Now().UTC()
	if !now.After(r.lastCreated) {
		now = r.lastCreated.Add(time.Nanosecond)
	}
	r.lastCreated = now

	m := model.Message{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
	}
	r.byID[m.ID] = &m
	r.order = append(r.order, m.ID)
	r.pending = append(r.pending, m.ID)
	return m, nil
}

func (r *MemoryMessageRepo) ListRecent(ctx context.Context, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 10
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.Message{}
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.byID[r.order[i]])
	}
	return out, nil
}

func (r *MemoryMessageRepo) NextUnprinted(ctx context.Context) (model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.pending) > 0 {
		m := r.byID[r.pending[0]]
		if !m.Printed {
			return *m, nil
		}
		r.pending = r.pending[1:]
	}
	return model.Message{}, errs.ErrNoData
}

func (r *MemoryMessageRepo) MarkPrinted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || bool(m.Printed) {
		// Idempotent: repeat and unknown ids succeed without mutation.
		return nil
	}

	now := time.Now().UTC()
	m.Printed = true
	m.PrintedAt = &now
	return nil
}
