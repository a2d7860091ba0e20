package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/andymccutcheon/return-to-print/internal/cache"
	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
	"github.com/andymccutcheon/return-to-print/internal/repo"
)

// recentLimit caps the recent-messages list.
const recentLimit = 10

type Handler struct {
	repo   repo.MessageRepository
	recent cache.RecentCache // optional, may be nil
}

func NewHandler(r repo.MessageRepository, recent cache.RecentCache) *Handler {
	return &Handler{repo: r, recent: recent}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}

type createMessageRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CreateMessage handles POST /message.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name, err := model.ValidateName(req.Name)
	if err != nil {
		slog.Warn("message rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	content, err := model.ValidateContent(req.Content)
	if err != nil {
		slog.Warn("message rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.repo.Create(r.Context(), name, content)
	if err != nil {
		if errs.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("create message", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidateRecent(r)

	slog.Info("message created", "id", msg.ID, "name", msg.Name)
	writeJSON(w, http.StatusCreated, msg)
}

// RecentMessages handles GET /messages/recent.
func (h *Handler) RecentMessages(w http.ResponseWriter, r *http.Request) {
	if h.recent != nil {
		if msgs, err := h.recent.Get(r.Context()); err == nil {
			writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
			return
		} else if !errs.IsNoData(err) {
			slog.Warn("recent cache read failed", "error", err)
		}
	}

	msgs, err := h.repo.ListRecent(r.Context(), recentLimit)
	if err != nil {
		slog.Error("list recent messages", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	if h.recent != nil {
		if err := h.recent.Set(r.Context(), msgs); err != nil {
			slog.Warn("recent cache write failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

// NextToPrint handles GET /printer/next-to-print. It never blocks
// waiting for a message: the worker owns the polling cadence.
func (h *Handler) NextToPrint(w http.ResponseWriter, r *http.Request) {
	msg, err := h.repo.NextUnprinted(r.Context())
	if err != nil {
		if errs.IsNoData(err) {
			writeJSON(w, http.StatusOK, map[string]any{"message": nil})
			return
		}
		slog.Error("next unprinted message", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

type markPrintedRequest struct {
	ID string `json:"id"`
}

// MarkPrinted handles POST /printer/mark-printed. Repeat calls with the
// same id succeed; that idempotency is what keeps the worker's
// at-least-once retry loop safe.
func (h *Handler) MarkPrinted(w http.ResponseWriter, r *http.Request) {
	var req markPrintedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := model.ValidateID(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.MarkPrinted(r.Context(), id); err != nil {
		slog.Error("mark message printed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidateRecent(r)

	slog.Info("message marked printed", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": id})
}

func (h *Handler) invalidateRecent(r *http.Request) {
	if h.recent == nil {
		return
	}
	if err := h.recent.Invalidate(r.Context()); err != nil {
		slog.Warn("recent cache invalidate failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]any{"error": reason})
}
