// Package worker implements the delivery loop that moves messages from
// the queue API to the printer. The loop is a single-threaded finite
// state machine: exactly one message is in flight at a time, and every
// failure folds into a state transition instead of ending the process.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/andymccutcheon/return-to-print/internal/model"
	"github.com/andymccutcheon/return-to-print/internal/printer"
)

// State is the worker's position in the delivery cycle.
type State int

const (
	// StateDisconnected means the printer handle is not open. Entry
	// action: attempt to connect, retrying on a fixed backoff.
	StateDisconnected State = iota

	// StateIdle waits out the poll interval before fetching again.
	StateIdle

	// StateFetching asks the API for the oldest pending message.
	StateFetching

	// StateRendering prints the in-flight message.
	StateRendering

	// StateAcknowledging reports the successful print back to the API.
	StateAcknowledging
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateRendering:
		return "rendering"
	case StateAcknowledging:
		return "acknowledging"
	}
	return "unknown"
}

// Queue is the worker's view of the queue API.
type Queue interface {
	FetchNext(ctx context.Context) (*model.Message, error)
	MarkPrinted(ctx context.Context, id string) error
}

// Config holds the two timing constants that govern the loop.
type Config struct {
	// PollInterval is how long Idle waits before fetching.
	PollInterval time.Duration

	// ReconnectDelay is how long Disconnected waits between connect
	// attempts.
	ReconnectDelay time.Duration
}

// Worker delivers queued messages to the output device with
// at-least-once semantics: a message is only acknowledged after a
// successful print, and a failed acknowledgment is never retried as an
// acknowledgment — the message stays pending and prints again on a
// later cycle. Duplicate output is the accepted cost of never stalling
// on a dead network.
type Worker struct {
	queue  Queue
	device printer.Device
	cfg    Config

	state   State
	current *model.Message
}

func New(queue Queue, device printer.Device, cfg Config) (*Worker, error) {
	if queue == nil {
		return nil, errors.New("queue must not be nil")
	}
	if device == nil {
		return nil, errors.New("device must not be nil")
	}
	if cfg.PollInterval <= 0 {
		return nil, errors.New("poll interval must be > 0")
	}
	if cfg.ReconnectDelay <= 0 {
		return nil, errors.New("reconnect delay must be > 0")
	}
	return &Worker{
		queue:  queue,
		device: device,
		cfg:    cfg,
		state:  StateDisconnected,
	}, nil
}

// State returns the worker's current state.
func (w *Worker) State() State {
	return w.state
}

// Step runs the current state's entry action, advances the state, and
// returns how long to wait before the next step. Keeping the wait as a
// return value means every transition is testable without a clock.
func (w *Worker) Step(ctx context.Context) time.Duration {
	switch w.state {
	case StateDisconnected:
		if err := w.device.Connect(); err != nil {
			slog.Error("printer unavailable", "error", err, "retry_in", w.cfg.ReconnectDelay)
			return w.cfg.ReconnectDelay
		}
		slog.Info("printer connected")
		w.state = StateIdle
		return 0

	case StateIdle:
		w.state = StateFetching
		return w.cfg.PollInterval

	case StateFetching:
		msg, err := w.queue.FetchNext(ctx)
		if err != nil {
			slog.Error("fetch next message", "error", err)
			w.state = StateIdle
			return 0
		}
		if msg == nil {
			w.state = StateIdle
			return 0
		}
		slog.Info("message fetched", "id", msg.ID, "from", msg.Name)
		w.current = msg
		w.state = StateRendering
		return 0

	case StateRendering:
		if err := w.device.Print(*w.current); err != nil {
			// The message stays pending and will be fetched again
			// once the printer is back.
			slog.Error("print message", "id", w.current.ID, "error", err)
			w.current = nil
			_ = w.device.Close()
			w.state = StateDisconnected
			return 0
		}
		slog.Info("message printed", "id", w.current.ID)
		w.state = StateAcknowledging
		return 0

	case StateAcknowledging:
		if err := w.queue.MarkPrinted(ctx, w.current.ID); err != nil {
			// Deliberately not retried here: the message remains
			// pending and may print twice. Blocking on the ack would
			// stall the worker whenever the network is down.
			slog.Warn("acknowledge failed, message may reprint", "id", w.current.ID, "error", err)
		}
		w.current = nil
		w.state = StateIdle
		return 0
	}

	return w.cfg.PollInterval
}

// Run drives the state machine until ctx is cancelled, then releases
// the device handle on a best-effort basis.
func (w *Worker) Run(ctx context.Context) {
	slog.Info("delivery worker starting",
		"poll_interval", w.cfg.PollInterval.String(),
		"reconnect_delay", w.cfg.ReconnectDelay.String(),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("delivery worker stopping")
			if err := w.device.Close(); err != nil {
				slog.Warn("close printer", "error", err)
			}
			slog.Info("delivery worker stopped")
			return
		case <-timer.C:
		}

		timer.Reset(w.safeStep(ctx))
	}
}

// safeStep keeps a panicking step from taking the process down.
func (w *Worker) safeStep(ctx context.Context) (wait time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("worker step panic recovered", "state", w.state.String(), "panic", r)
			w.current = nil
			w.state = StateIdle
			wait = w.cfg.PollInterval
		}
	}()
	return w.Step(ctx)
}
