// Package metrics provides per-session decode metrics.
//
// The Collector accumulates counters while one or more capture files are
// decoded. It is a leaf package with no internal dependencies. Policy
// rejections are absorbed from policy.Stats when a file finishes rather than
// recorded live, avoiding double-counting.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all decode metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Files
	FilesCompleted  int64
	FilesAborted    int64
	FilesUnreadable int64

	// Input
	ChunksRead int64
	BytesRead  int64

	// Records
	RecordsDecoded  int64
	UnknownKinds    int64
	TruncatedBodies int64
	ResumedSegments int64

	// Chunk boundaries
	SplitHeaders    int64
	SplitQuantities int64

	// Policy (absorbed from policy.Stats at file completion)
	HeadersChecked   int64
	MalformedLengths int64

	// Dimensions (informational, set at construction)
	Policy    string
	SessionID string
}

// Collector accumulates decode metrics.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	filesCompleted  int64
	filesAborted    int64
	filesUnreadable int64

	chunksRead int64
	bytesRead  int64

	recordsDecoded  int64
	unknownKinds    int64
	truncatedBodies int64
	resumedSegments int64

	splitHeaders    int64
	splitQuantities int64

	headersChecked   int64
	malformedLengths int64

	policy    string
	sessionID string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(policy, sessionID string) *Collector {
	return &Collector{
		policy:    policy,
		sessionID: sessionID,
	}
}

// add applies delta to the counter selected by field under the lock.
func (c *Collector) add(field *int64, delta int64) {
	c.mu.Lock()
	*field += delta
	c.mu.Unlock()
}

// --- Files ---

// IncFileCompleted records a file decoded to the end.
func (c *Collector) IncFileCompleted() {
	if c == nil {
		return
	}
	c.add(&c.filesCompleted, 1)
}

// IncFileAborted records a file stopped by a fatal decode error.
func (c *Collector) IncFileAborted() {
	if c == nil {
		return
	}
	c.add(&c.filesAborted, 1)
}

// IncFileUnreadable records a file that could not be opened or read.
func (c *Collector) IncFileUnreadable() {
	if c == nil {
		return
	}
	c.add(&c.filesUnreadable, 1)
}

// --- Input ---

// AddChunk records one chunk of n bytes.
func (c *Collector) AddChunk(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.chunksRead++
	c.bytesRead += int64(n)
	c.mu.Unlock()
}

// --- Records ---

// IncRecordDecoded records a record whose type code was read.
func (c *Collector) IncRecordDecoded() {
	if c == nil {
		return
	}
	c.add(&c.recordsDecoded, 1)
}

// IncUnknownKind records a type code matching no message kind.
func (c *Collector) IncUnknownKind() {
	if c == nil {
		return
	}
	c.add(&c.unknownKinds, 1)
}

// IncTruncatedBody records a segment that carried only the front of its message.
func (c *Collector) IncTruncatedBody() {
	if c == nil {
		return
	}
	c.add(&c.truncatedBodies, 1)
}

// IncResumedSegment records a continuation segment that was skipped.
func (c *Collector) IncResumedSegment() {
	if c == nil {
		return
	}
	c.add(&c.resumedSegments, 1)
}

// --- Chunk boundaries ---

// IncSplitHeader records a record prefix cut by the end of a chunk.
func (c *Collector) IncSplitHeader() {
	if c == nil {
		return
	}
	c.add(&c.splitHeaders, 1)
}

// IncSplitQuantity records an executed quantity cut by the end of a chunk.
func (c *Collector) IncSplitQuantity() {
	if c == nil {
		return
	}
	c.add(&c.splitQuantities, 1)
}

// --- Policy (absorbed from policy.Stats) ---

// AbsorbPolicyStats adds a finished file's policy counters to the collector.
func (c *Collector) AbsorbPolicyStats(checked, rejected int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.headersChecked += checked
	c.malformedLengths += rejected
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all metrics.
// The returned Snapshot is safe to read concurrently; the Collector can
// continue to be mutated independently.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		FilesCompleted:  c.filesCompleted,
		FilesAborted:    c.filesAborted,
		FilesUnreadable: c.filesUnreadable,

		ChunksRead: c.chunksRead,
		BytesRead:  c.bytesRead,

		RecordsDecoded:  c.recordsDecoded,
		UnknownKinds:    c.unknownKinds,
		TruncatedBodies: c.truncatedBodies,
		ResumedSegments: c.resumedSegments,

		SplitHeaders:    c.splitHeaders,
		SplitQuantities: c.splitQuantities,

		HeadersChecked:   c.headersChecked,
		MalformedLengths: c.malformedLengths,

		Policy:    c.policy,
		SessionID: c.sessionID,
	}
}

// Sub returns the counters accumulated since base was taken.
// Dimensions are kept from s.
func (s Snapshot) Sub(base Snapshot) Snapshot {
	return Snapshot{
		FilesCompleted:  s.FilesCompleted - base.FilesCompleted,
		FilesAborted:    s.FilesAborted - base.FilesAborted,
		FilesUnreadable: s.FilesUnreadable - base.FilesUnreadable,

		ChunksRead: s.ChunksRead - base.ChunksRead,
		BytesRead:  s.BytesRead - base.BytesRead,

		RecordsDecoded:  s.RecordsDecoded - base.RecordsDecoded,
		UnknownKinds:    s.UnknownKinds - base.UnknownKinds,
		TruncatedBodies: s.TruncatedBodies - base.TruncatedBodies,
		ResumedSegments: s.ResumedSegments - base.ResumedSegments,

		SplitHeaders:    s.SplitHeaders - base.SplitHeaders,
		SplitQuantities: s.SplitQuantities - base.SplitQuantities,

		HeadersChecked:   s.HeadersChecked - base.HeadersChecked,
		MalformedLengths: s.MalformedLengths - base.MalformedLengths,

		Policy:    s.Policy,
		SessionID: s.SessionID,
	}
}
