package printer

import (
	"strings"
	"testing"
	"time"

	"github.com/andymccutcheon/return-to-print/internal/model"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	// 18:00 UTC is 11:00 in the printer's fixed UTC-7 zone.
	date, clock := formatTimestamp(time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC))

	if date != "02/02/2026" {
		t.Fatalf("expected date 02/02/2026, got %q", date)
	}
	if clock != "11:00 AM MST" {
		t.Fatalf("expected clock 11:00 AM MST, got %q", clock)
	}
}

func TestDivider(t *testing.T) {
	t.Parallel()

	d := divider('=')
	if len(d) != receiptWidth {
		t.Fatalf("expected width %d, got %d", receiptWidth, len(d))
	}
	if d != strings.Repeat("=", receiptWidth) {
		t.Fatalf("unexpected divider %q", d)
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	if got := shortID("550e8400-e29b-41d4-a716-446655440000"); got != "550e8400" {
		t.Fatalf("expected 550e8400, got %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("expected short ids unchanged, got %q", got)
	}
}

func TestSerialPrinter_PrintWithoutConnect(t *testing.T) {
	t.Parallel()

	p := NewSerialPrinter("/dev/null", 19200, "Test Recipient")
	msg := model.Message{ID: "abc-123", Name: "Alice", Content: "Hello", CreatedAt: time.Now()}
	if err := p.Print(msg); err != ErrNotConnected {
		t.Fatalf("expected ErrNotConnected, got: %v", err)
	}
}

func TestSerialPrinter_CloseWithoutConnect(t *testing.T) {
	t.Parallel()

	p := NewSerialPrinter("/dev/null", 19200, "Test Recipient")
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil, got: %v", err)
	}
}
