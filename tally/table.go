// Package tally holds the per-stream counters of one capture file.
//
// A Table is owned by a single processing session and is not safe for
// concurrent use.
package tally

import (
	"sort"

	"github.com/pithecene-io/packetcount/types"
)

// entry is the state tracked for one stream.
type entry struct {
	counters types.StreamCounters
	// pendingSkip is the number of message bytes still to arrive in a later
	// segment of this stream; zero means nothing is pending.
	pendingSkip uint32
}

// Table maps stream ids to their counters.
// Streams are created lazily on first sighting and live for the whole file.
type Table struct {
	streams map[types.StreamID]*entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{streams: make(map[types.StreamID]*entry)}
}

// Touch records a sighting of the stream, creating its counters if needed.
func (t *Table) Touch(id types.StreamID) {
	t.get(id)
}

// Count increments the tally for one message kind.
func (t *Table) Count(id types.StreamID, kind types.MessageKind) {
	if int(kind) >= types.NumKinds {
		return
	}
	t.get(id).counters.Messages[kind]++
}

// CountUnknown increments the tally of records with an unrecognised type code.
func (t *Table) CountUnknown(id types.StreamID) {
	t.get(id).counters.Unknown++
}

// AddShares adds an executed quantity to the stream's running sum.
// The sum wraps at 32 bits.
func (t *Table) AddShares(id types.StreamID, shares uint32) {
	t.get(id).counters.ExecutedShares += shares
}

// PendingSkip returns the bytes still owed by a truncated message on the stream.
func (t *Table) PendingSkip(id types.StreamID) uint32 {
	e, ok := t.streams[id]
	if !ok {
		return 0
	}
	return e.pendingSkip
}

// SetPendingSkip records that n message bytes arrive in a later segment.
func (t *Table) SetPendingSkip(id types.StreamID, n uint32) {
	t.get(id).pendingSkip = n
}

// ClearPendingSkip resolves the stream's pending skip.
func (t *Table) ClearPendingSkip(id types.StreamID) {
	if e, ok := t.streams[id]; ok {
		e.pendingSkip = 0
	}
}

// Lookup returns a copy of the stream's counters.
func (t *Table) Lookup(id types.StreamID) (types.StreamCounters, bool) {
	e, ok := t.streams[id]
	if !ok {
		return types.StreamCounters{}, false
	}
	return e.counters, true
}

// Len returns the number of streams seen.
func (t *Table) Len() int {
	return len(t.streams)
}

// IDs returns the stream ids seen, in ascending order.
func (t *Table) IDs() []types.StreamID {
	ids := make([]types.StreamID, 0, len(t.streams))
	for id := range t.streams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Snapshot returns the reporting view of every stream, in ascending id order.
func (t *Table) Snapshot() []types.StreamSummary {
	ids := t.IDs()
	out := make([]types.StreamSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.NewStreamSummary(id, t.streams[id].counters))
	}
	return out
}

func (t *Table) get(id types.StreamID) *entry {
	e, ok := t.streams[id]
	if !ok {
		e = &entry{}
		t.streams[id] = e
	}
	return e
}
