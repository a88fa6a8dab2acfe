// Package runtime drives the decoding of capture files.
//
// A Session reads each file in fixed-size chunks, threads the continuation
// state through the chunk processor and turns the final stream table into a
// file summary. Files are processed strictly one after another; each gets
// its own table and continuation.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/packetcount/adapter"
	"github.com/pithecene-io/packetcount/iox"
	"github.com/pithecene-io/packetcount/log"
	"github.com/pithecene-io/packetcount/metrics"
	"github.com/pithecene-io/packetcount/policy"
	"github.com/pithecene-io/packetcount/processor"
	"github.com/pithecene-io/packetcount/tally"
	"github.com/pithecene-io/packetcount/types"
)

// DefaultChunkSize is the read granularity for capture files.
const DefaultChunkSize = 2048

// DefaultPublishTimeout bounds a single adapter publish.
const DefaultPublishTimeout = 30 * time.Second

// errAborted stops the read loop once the processor reports an abort.
var errAborted = errors.New("decode aborted")

// SessionConfig configures a decode session.
type SessionConfig struct {
	// Meta is the session identity. Meta.Strict selects the length policy.
	Meta *types.SessionMeta
	// ChunkSize is the read granularity (default DefaultChunkSize).
	ChunkSize int
	// Logger receives session logs. If nil, a logger on stderr is created.
	Logger *log.Logger
	// Collector is the metrics collector for this session.
	// If nil, no metrics are recorded (all Collector methods are nil-safe).
	Collector *metrics.Collector
	// Adapter is notified after each file. If nil, nothing is published.
	Adapter adapter.Adapter
	// PublishTimeout bounds each publish (default DefaultPublishTimeout).
	PublishTimeout time.Duration
	// Now overrides the clock (for testing).
	Now func() time.Time
}

// FileResult is the outcome of one file.
type FileResult struct {
	// Summary is the per-stream report plus the file status.
	Summary *types.FileSummary
	// PolicyStats is the length policy's counters for this file.
	PolicyStats policy.Stats
	// Metrics holds the counters this file contributed to the session.
	Metrics metrics.Snapshot
}

// Session decodes capture files one at a time.
type Session struct {
	config *SessionConfig
	logger *log.Logger
}

// NewSession creates a session.
// Returns error if the session metadata or chunk size is invalid.
func NewSession(config *SessionConfig) (*Session, error) {
	if config.Meta == nil {
		return nil, errors.New("session metadata is required")
	}
	if err := config.Meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session metadata: %w", err)
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be > 0, got %d", config.ChunkSize)
	}
	if config.PublishTimeout <= 0 {
		config.PublishTimeout = DefaultPublishTimeout
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	logger := config.Logger
	if logger == nil {
		logger = log.NewLogger(config.Meta, zapcore.InfoLevel)
	}

	return &Session{config: config, logger: logger}, nil
}

// ProcessFile opens path and decodes it.
// Returns a *FileError if the file cannot be opened or read.
func (s *Session) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		s.config.Collector.IncFileUnreadable()
		s.logger.ForFile(path).Error("cannot open file", map[string]any{"error": err.Error()})
		return nil, &FileError{Kind: FileErrorOpen, Path: path, Err: err}
	}
	defer iox.DiscardClose(f)

	return s.Run(ctx, path, f)
}

// Run decodes everything r yields as the capture named path.
//
// Returns:
//   - result with status completed: r was consumed to EOF
//   - result with status aborted: strict validation stopped the decode
//   - *FileError with Kind=FileErrorRead: r failed
//   - *FileError with Kind=FileErrorCanceled: ctx was done between chunks
func (s *Session) Run(ctx context.Context, path string, r io.Reader) (*FileResult, error) {
	logger := s.logger.ForFile(path)
	start := s.config.Now()
	base := s.config.Collector.Snapshot()

	pol := policy.New(s.config.Meta.Strict)
	proc := processor.New(tally.NewTable(), pol, s.config.Collector)

	summary := &types.FileSummary{
		SessionID: s.config.Meta.SessionID,
		Path:      path,
		Status:    types.FileCompleted,
	}

	logger.Debug("decoding file", map[string]any{
		"chunk_size": s.config.ChunkSize,
		"policy":     pol.Name(),
	})

	var state processor.Continuation
	err := iox.ReadChunks(r, s.config.ChunkSize, func(chunk []byte) error {
		if err := ctx.Err(); err != nil {
			return &FileError{Kind: FileErrorCanceled, Path: path, Err: err}
		}

		summary.Chunks++
		summary.BytesRead += int64(len(chunk))
		s.config.Collector.AddChunk(len(chunk))

		state = proc.Process(chunk, state)
		if state.Aborted {
			return errAborted
		}
		return nil
	})

	stats := pol.Stats()
	s.config.Collector.AbsorbPolicyStats(stats.Checked, stats.Rejected)

	switch {
	case err == nil, errors.Is(err, errAborted):
	case IsCanceledError(err):
		logger.Warn("decode canceled", map[string]any{"bytes_read": summary.BytesRead})
		return nil, err
	default:
		s.config.Collector.IncFileUnreadable()
		logger.Error("read failed", map[string]any{
			"error":      err.Error(),
			"bytes_read": summary.BytesRead,
		})
		return nil, &FileError{Kind: FileErrorRead, Path: path, Err: err}
	}

	if state.Aborted {
		summary.Status = types.FileAborted
		summary.Reason = state.Err.Error()
		s.config.Collector.IncFileAborted()
		logger.Warn("file aborted", map[string]any{
			"reason":     summary.Reason,
			"stream":     state.Err.Stream,
			"length":     state.Err.Length,
			"bytes_read": summary.BytesRead,
		})
	} else {
		summary.TrailingBytes = int64(state.TrailingBytes())
		if summary.TrailingBytes > 0 {
			logger.Warn("file ends inside a record", map[string]any{
				"trailing_bytes": summary.TrailingBytes,
			})
		}
		s.config.Collector.IncFileCompleted()
	}

	for _, unk := range proc.UnknownKinds() {
		logger.Warn("unknown message type", map[string]any{
			"kind":   unk.Kind.String(),
			"stream": unk.Stream,
			"code":   fmt.Sprintf("0x%02x", unk.Code),
			"length": unk.Length,
			"error":  unk.Error(),
		})
	}

	summary.Streams = proc.Table().Snapshot()
	summary.DurationMs = s.config.Now().Sub(start).Milliseconds()

	logger.Info("file finished", map[string]any{
		"status":      summary.Status,
		"streams":     len(summary.Streams),
		"chunks":      summary.Chunks,
		"bytes_read":  summary.BytesRead,
		"duration_ms": summary.DurationMs,
	})

	s.publish(ctx, logger, summary)

	return &FileResult{
		Summary:     summary,
		PolicyStats: stats,
		Metrics:     s.config.Collector.Snapshot().Sub(base),
	}, nil
}

// publish notifies the adapter. Failures are logged and never change the
// file's outcome.
func (s *Session) publish(ctx context.Context, logger *log.Logger, summary *types.FileSummary) {
	if s.config.Adapter == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, s.config.PublishTimeout)
	defer cancel()

	event := adapter.NewFileCompletedEvent(summary, s.config.Now())
	if err := s.config.Adapter.Publish(pubCtx, event); err != nil {
		logger.Warn("adapter publish failed", map[string]any{"error": err.Error()})
		return
	}
	logger.Debug("adapter publish succeeded", nil)
}
