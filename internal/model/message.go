package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/andymccutcheon/return-to-print/internal/errs"
)

// Field length bounds, enforced before persistence.
const (
	MaxNameLen    = 50
	MaxContentLen = 280
)

// Printed is the print status of a message. It is a plain bool in Go
// but marshals to the strings "true"/"false" on the wire, because the
// original backend stored the flag as a string (DynamoDB GSI hash key)
// and existing consumers expect that encoding.
type Printed bool

func (p Printed) MarshalJSON() ([]byte, error) {
	if p {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}

// UnmarshalJSON accepts both the legacy string form and a bare boolean.
func (p *Printed) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"true"`, `true`:
		*p = true
	case `"false"`, `false`, `null`:
		*p = false
	default:
		return fmt.Errorf("invalid printed value: %s", b)
	}
	return nil
}

// Message is a guest message queued for printing. The store assigns ID
// and CreatedAt; Printed transitions false to true at most once.
type Message struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Printed   Printed    `json:"printed"`
	PrintedAt *time.Time `json:"printed_at"`
}

// ValidateName trims and validates a sender name (1-50 characters).
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	err := validation.Validate(trimmed,
		validation.Required.Error("cannot be empty or whitespace only"),
		validation.RuneLength(1, MaxNameLen).Error(fmt.Sprintf("too long (max %d characters)", MaxNameLen)),
	)
	if err != nil {
		return "", errs.Wrap(errs.CodeValidation, "name", err)
	}
	return trimmed, nil
}

// ValidateContent trims and validates message content (1-280 characters).
func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	err := validation.Validate(trimmed,
		validation.Required.Error("cannot be empty or whitespace only"),
		validation.RuneLength(1, MaxContentLen).Error(fmt.Sprintf("too long (max %d characters)", MaxContentLen)),
	)
	if err != nil {
		return "", errs.Wrap(errs.CodeValidation, "content", err)
	}
	return trimmed, nil
}

// ValidateID trims and validates a message id. Ids are store-assigned
// UUIDs, so anything that does not parse as one is rejected here
// instead of surfacing as a store error.
func ValidateID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if err := validation.Validate(trimmed, validation.Required.Error("cannot be empty")); err != nil {
		return "", errs.Wrap(errs.CodeValidation, "id", err)
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return "", errs.New(errs.CodeValidation, "id: must be a valid UUID")
	}
	return trimmed, nil
}
