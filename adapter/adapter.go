// Package adapter defines the notification boundary for finished files.
//
// Adapters publish a file-completed event to a downstream system once a
// capture file has been decoded or aborted. The runtime owns adapter
// lifecycle; users provide configuration only. A failed publish never
// changes the outcome of the file.
package adapter

import (
	"context"
	"time"

	"github.com/pithecene-io/packetcount/types"
)

// EventTypeFileCompleted is the event_type of every published event.
const EventTypeFileCompleted = "file_completed"

// FileCompletedEvent is the payload published when a file finishes.
type FileCompletedEvent struct {
	ContractVersion string                `json:"contract_version" msgpack:"contract_version"`
	EventType       string                `json:"event_type" msgpack:"event_type"` // always "file_completed"
	SessionID       string                `json:"session_id" msgpack:"session_id"`
	Path            string                `json:"path" msgpack:"path"`
	Status          string                `json:"status" msgpack:"status"` // completed or aborted
	Reason          string                `json:"reason,omitempty" msgpack:"reason,omitempty"`
	Timestamp       string                `json:"timestamp" msgpack:"timestamp"` // ISO 8601
	BytesRead       int64                 `json:"bytes_read" msgpack:"bytes_read"`
	TrailingBytes   int64                 `json:"trailing_bytes" msgpack:"trailing_bytes"`
	DurationMs      int64                 `json:"duration_ms" msgpack:"duration_ms"`
	Streams         []types.StreamSummary `json:"streams" msgpack:"streams"`
}

// NewFileCompletedEvent builds the event for a finished file.
func NewFileCompletedEvent(summary *types.FileSummary, at time.Time) *FileCompletedEvent {
	return &FileCompletedEvent{
		ContractVersion: types.ContractVersion,
		EventType:       EventTypeFileCompleted,
		SessionID:       summary.SessionID,
		Path:            summary.Path,
		Status:          string(summary.Status),
		Reason:          summary.Reason,
		Timestamp:       at.UTC().Format(time.RFC3339),
		BytesRead:       summary.BytesRead,
		TrailingBytes:   summary.TrailingBytes,
		DurationMs:      summary.DurationMs,
		Streams:         summary.Streams,
	}
}

// Adapter publishes file completion events to a downstream system.
type Adapter interface {
	// Publish sends a file completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *FileCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}
