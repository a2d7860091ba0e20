package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

// QueueClient is the worker's view of the queue API: fetch the next
// pending message, acknowledge a printed one. All failures come back as
// TRANSPORT_ERROR; the worker folds them into its loop instead of
// retrying here.
type QueueClient struct {
	baseURL string
	client  *http.Client
}

func NewQueueClient(baseURL string) *QueueClient {
	return &QueueClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type fetchNextResponse struct {
	Message *model.Message `json:"message"`
}

// FetchNext returns the oldest pending message, or nil if none exists.
func (c *QueueClient) FetchNext(ctx context.Context) (*model.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/printer/next-to-print", nil)
	if err != nil {
		return nil, errs.Wrap(errs.CodeTransport, "build fetch request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.CodeTransport, "fetch next message", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.CodeTransport,
			fmt.Sprintf("fetch next message: unexpected status code: %d body=%q", resp.StatusCode, string(body)))
	}

	var fr fetchNextResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, errs.Wrap(errs.CodeTransport, fmt.Sprintf("decode fetch response body=%q", string(body)), err)
	}
	return fr.Message, nil
}

type markPrintedRequest struct {
	ID string `json:"id"`
}

type markPrintedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// MarkPrinted acknowledges a successfully printed message.
func (c *QueueClient) MarkPrinted(ctx context.Context, id string) error {
	reqBody, err := json.Marshal(markPrintedRequest{ID: id})
	if err != nil {
		return errs.Wrap(errs.CodeTransport, "encode acknowledge request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/printer/mark-printed", bytes.NewReader(reqBody))
	if err != nil {
		return errs.Wrap(errs.CodeTransport, "build acknowledge request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(errs.CodeTransport, "acknowledge message", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errs.New(errs.CodeTransport,
			fmt.Sprintf("acknowledge message: unexpected status code: %d body=%q", resp.StatusCode, string(body)))
	}

	var mr markPrintedResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return errs.Wrap(errs.CodeTransport, fmt.Sprintf("decode acknowledge response body=%q", string(body)), err)
	}
	if mr.Status != "ok" {
		return errs.New(errs.CodeTransport, fmt.Sprintf("acknowledge message: unexpected status %q", mr.Status))
	}
	return nil
}
