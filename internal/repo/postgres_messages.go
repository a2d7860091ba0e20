package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

// schema keeps a partial index over unprinted messages so NextUnprinted
// stays an index lookup instead of a table scan as the table grows.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          UUID PRIMARY KEY,
	sender_name TEXT NOT NULL,
	content     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	printed     BOOLEAN NOT NULL DEFAULT FALSE,
	printed_at  TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS messages_unprinted_idx
	ON messages (created_at)
	WHERE NOT printed;
`

type PostgresMessageRepo struct {
	db *sql.DB
}

func NewPostgresMessageRepo(db *sql.DB) *PostgresMessageRepo {
	return &PostgresMessageRepo{db: db}
}

// EnsureSchema creates the messages table and its pending index.
func (r *PostgresMessageRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errs.Wrap(errs.CodeStore, "ensure schema", err)
	}
	return nil
}

func (r *PostgresMessageRepo) Create(ctx context.Context, name, content string) (model.Message, error) {
	// Validated again here so an invalid record can never reach the
	// table regardless of caller.
	name, err := model.ValidateName(name)
	if err != nil {
		return model.Message{}, err
	}
	content, err = model.ValidateContent(content)
	if err != nil {
		return model.Message{}, err
	}

	m := model.Message{
		ID:      uuid.NewString(),
		Name:    name,
		Content: content,
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO messages (id, sender_name, content)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, m.ID, m.Name, m.Content).Scan(&m.CreatedAt)
	if err != nil {
		return model.Message{}, errs.Wrap(errs.CodeStore, "insert message", err)
	}
	return m, nil
}

func (r *PostgresMessageRepo) ListRecent(ctx context.Context, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_name, content, created_at, printed, printed_at
		FROM messages
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errs.Wrap(errs.CodeStore, "list recent messages", err)
	}
	defer rows.Close()

	out := []model.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, errs.Wrap(errs.CodeStore, "scan message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.CodeStore, "list recent messages", err)
	}
	return out, nil
}

func (r *PostgresMessageRepo) NextUnprinted(ctx context.Context) (model.Message, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, sender_name, content, created_at, printed, printed_at
		FROM messages
		WHERE NOT printed
		ORDER BY created_at ASC
		LIMIT 1
	`)

	return nextFromRow(row)
}

func nextFromRow(row rowScanner) (model.Message, error) {
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Message{}, errs.ErrNoData
	}
	if err != nil {
		return model.Message{}, errs.Wrap(errs.CodeStore, "next unprinted message", err)
	}
	return m, nil
}

// MarkPrinted is a conditional update keyed on id, not a lock: the
// first call flips printed and stamps printed_at, later calls match
// zero rows and succeed without touching the record.
func (r *PostgresMessageRepo) MarkPrinted(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages
		SET printed = TRUE,
		    printed_at = now()
		WHERE id = $1 AND NOT printed
	`, id)
	if err != nil {
		return errs.Wrap(errs.CodeStore, "mark message printed", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	var printed bool
	var printedAt sql.NullTime

	if err := row.Scan(&m.ID, &m.Name, &m.Content, &m.CreatedAt, &printed, &printedAt); err != nil {
		return model.Message{}, err
	}

	m.Printed = model.Printed(printed)
	if printedAt.Valid {
		t := printedAt.Time
		m.PrintedAt = &t
	}
	return m, nil
}
