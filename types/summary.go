package types

// FileStatus is the terminal status of one processed capture file.
type FileStatus string

// File status constants.
const (
	// FileCompleted means every chunk was consumed.
	FileCompleted FileStatus = "completed"
	// FileAborted means strict validation stopped the decode; counters
	// accumulated before the offending record are still reported.
	FileAborted FileStatus = "aborted"
)

// StreamSummary is the reporting view of one stream's counters.
// Field order is the order used by table rendering.
type StreamSummary struct {
	Stream         StreamID `json:"stream" yaml:"stream" msgpack:"stream"`
	Accepted       uint32   `json:"accepted" yaml:"accepted" msgpack:"accepted"`
	SystemEvent    uint32   `json:"system_event" yaml:"system_event" msgpack:"system_event"`
	Replaced       uint32   `json:"replaced" yaml:"replaced" msgpack:"replaced"`
	Canceled       uint32   `json:"canceled" yaml:"canceled" msgpack:"canceled"`
	Executed       uint32   `json:"executed" yaml:"executed" msgpack:"executed"`
	Unknown        uint32   `json:"unknown" yaml:"unknown" msgpack:"unknown"`
	ExecutedShares uint32   `json:"executed_shares" yaml:"executed_shares" msgpack:"executed_shares"`
}

// NewStreamSummary builds the reporting view of a stream's counters.
func NewStreamSummary(id StreamID, c StreamCounters) StreamSummary {
	return StreamSummary{
		Stream:         id,
		Accepted:       c.Messages[KindAccepted],
		SystemEvent:    c.Messages[KindSystemEvent],
		Replaced:       c.Messages[KindReplaced],
		Canceled:       c.Messages[KindCanceled],
		Executed:       c.Messages[KindExecuted],
		Unknown:        c.Unknown,
		ExecutedShares: c.ExecutedShares,
	}
}

// Count returns the tally for one kind.
func (s StreamSummary) Count(k MessageKind) uint32 {
	switch k {
	case KindAccepted:
		return s.Accepted
	case KindSystemEvent:
		return s.SystemEvent
	case KindReplaced:
		return s.Replaced
	case KindCanceled:
		return s.Canceled
	case KindExecuted:
		return s.Executed
	default:
		return 0
	}
}

// FileSummary is the outcome of processing one capture file.
type FileSummary struct {
	SessionID string     `json:"session_id" yaml:"session_id"`
	Path      string     `json:"path" yaml:"path"`
	Status    FileStatus `json:"status" yaml:"status"`
	// Reason explains an aborted status; empty when completed.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// BytesRead is the number of bytes consumed from the file.
	BytesRead int64 `json:"bytes_read" yaml:"bytes_read"`
	// Chunks is the number of chunks handed to the processor.
	Chunks int64 `json:"chunks" yaml:"chunks"`
	// TrailingBytes counts bytes of a record left incomplete at end of file.
	TrailingBytes int64 `json:"trailing_bytes" yaml:"trailing_bytes"`
	// DurationMs is the wall time spent on the file.
	DurationMs int64           `json:"duration_ms" yaml:"duration_ms"`
	Streams    []StreamSummary `json:"streams" yaml:"streams"`
}

// Aborted reports whether the file ended in the aborted status.
func (s *FileSummary) Aborted() bool {
	return s != nil && s.Status == FileAborted
}
