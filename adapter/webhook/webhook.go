// Package webhook posts file-completed events to an HTTP endpoint.
//
// Each finished capture file produces one JSON POST. The session, file
// status and contract version are mirrored into request headers so a
// receiver can route or drop events without parsing the body.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pithecene-io/packetcount/adapter"
	"github.com/pithecene-io/packetcount/iox"
	"github.com/pithecene-io/packetcount/types"
)

const (
	// DefaultTimeout bounds a single POST.
	DefaultTimeout = 10 * time.Second
	// DefaultRetries is the number of extra attempts after a 5xx or network failure.
	DefaultRetries = 3
)

// Request headers set on every POST.
const (
	EventHeader    = "X-Packetcount-Event"
	SessionHeader  = "X-Packetcount-Session"
	StatusHeader   = "X-Packetcount-Status"
	ContractHeader = "X-Packetcount-Contract"
)

// maxErrorBody caps the response excerpt kept on a StatusError.
const maxErrorBody = 256

var userAgent = "packetcount/" + types.Version

// Config configures the webhook adapter.
type Config struct {
	// URL receives the POSTs. Required.
	URL string
	// Headers are added to each request after the packetcount headers,
	// so a configured header can replace one of them.
	Headers map[string]string
	// Timeout bounds each attempt (default DefaultTimeout).
	Timeout time.Duration
	// Retries is the number of extra attempts.
	Retries int
	// Backoff is the delay before the first retry (default adapter.DefaultBackoff).
	Backoff time.Duration
}

// Adapter posts file-completed events.
type Adapter struct {
	config Config
	client *http.Client
}

// New validates cfg and builds an adapter.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("packetcount webhook: url is required")
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("packetcount webhook: retries must be >= 0, got %d", cfg.Retries)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Adapter{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Publish posts event as JSON.
// A 4xx response fails at once; 5xx responses and transport errors are retried.
func (a *Adapter) Publish(ctx context.Context, event *adapter.FileCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("packetcount webhook: encode event for %s: %w", event.Path, err)
	}

	policy := adapter.RetryPolicy{
		Retries:   a.config.Retries,
		Backoff:   a.config.Backoff,
		Permanent: isRejected,
	}
	return adapter.Retry(ctx, "webhook", policy, func(ctx context.Context) error {
		return a.post(ctx, event, body)
	})
}

// StatusError reports a non-2xx answer from the receiver.
type StatusError struct {
	Code int
	// Body is the start of the response body, trimmed.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("receiver answered %d", e.Code)
	}
	return fmt.Sprintf("receiver answered %d: %s", e.Code, e.Body)
}

// isRejected reports whether the receiver refused the event outright.
func isRejected(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500
}

func (a *Adapter) post(ctx context.Context, event *adapter.FileCompletedEvent, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(EventHeader, event.EventType)
	req.Header.Set(SessionHeader, event.SessionID)
	req.Header.Set(StatusHeader, event.Status)
	req.Header.Set(ContractHeader, event.ContractVersion)
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", event.Path, err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_, _ = io.Copy(io.Discard, resp.Body)
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
}

// Close drops idle keep-alive connections.
func (a *Adapter) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

var _ adapter.Adapter = (*Adapter)(nil)
