package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/viant/invitation/internal/logging"
)

const maxErrorBody = 4096

// HTTP submits JSON payloads with POST.
type HTTP struct {
	client  *http.Client
	headers http.Header
	logger  *slog.Logger
}

// Submit posts payload as JSON to URL; any non-2xx status is an *Error.
func (h *HTTP) Submit(ctx context.Context, URL string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %v: %w", URL, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, URL, bytes.NewReader(data))
	if err != nil {
		return &Error{URL: URL, Err: err}
	}
	for name, values := range h.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return &Error{URL: URL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		h.logger.Debug("submission rejected", "url", URL, "status", resp.StatusCode)
		return &Error{URL: URL, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// New creates an HTTP submitter.
func New(options ...Option) *HTTP {
	ret := &HTTP{
		client:  &http.Client{},
		headers: http.Header{},
		logger:  logging.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
