// Package processor decodes capture records one chunk at a time.
//
// Record boundaries do not line up with chunk boundaries. A Processor keeps
// no state of its own between calls: everything needed to resume a record
// cut by the end of a chunk travels in the Continuation returned by Process
// and handed back with the next chunk.
package processor

import (
	"errors"

	"github.com/pithecene-io/packetcount/metrics"
	"github.com/pithecene-io/packetcount/policy"
	"github.com/pithecene-io/packetcount/tally"
	"github.com/pithecene-io/packetcount/types"
	"github.com/pithecene-io/packetcount/wire"
)

// Processor drives the wire decoders over chunks of one capture file and
// records the results in a stream table.
//
// A Processor is bound to one file and must not be used concurrently.
type Processor struct {
	table   *tally.Table
	policy  policy.Policy
	metrics *metrics.Collector

	// unknown holds one error per distinct (stream, type code) pair.
	unknown     []*wire.DecodeError
	unknownSeen map[unknownKey]struct{}
}

// maxUnknownReports bounds the distinct unknown kinds kept for reporting.
const maxUnknownReports = 32

type unknownKey struct {
	stream types.StreamID
	code   byte
}

// New creates a processor writing into table.
// A nil policy accepts every header; a nil collector disables metrics.
func New(table *tally.Table, pol policy.Policy, collector *metrics.Collector) *Processor {
	if pol == nil {
		pol = policy.NewLenientPolicy()
	}
	return &Processor{
		table:   table,
		policy:  pol,
		metrics: collector,
	}
}

// Table returns the stream table the processor writes into.
func (p *Processor) Table() *tally.Table {
	return p.table
}

// UnknownKinds returns the distinct unknown type codes seen so far, one
// error per stream and code, in order of first sighting.
func (p *Processor) UnknownKinds() []*wire.DecodeError {
	return append([]*wire.DecodeError(nil), p.unknown...)
}

func (p *Processor) noteUnknown(h wire.Header, code byte) {
	key := unknownKey{stream: h.Stream, code: code}
	if _, seen := p.unknownSeen[key]; seen || len(p.unknown) >= maxUnknownReports {
		return
	}
	if p.unknownSeen == nil {
		p.unknownSeen = make(map[unknownKey]struct{})
	}
	p.unknownSeen[key] = struct{}{}
	p.unknown = append(p.unknown, wire.NewUnknownKind(h, code))
}

// Process decodes one chunk, resuming from in, and returns the state for
// the next chunk. The chunk is not retained; callers may reuse its buffer.
//
// A policy violation stops the chunk at the offending record: the returned
// state has Aborted set and every later call returns it unchanged.
func (p *Processor) Process(chunk []byte, in Continuation) Continuation {
	if in.Aborted {
		return in
	}

	var out Continuation
	for _, q := range in.Quantities {
		if q.feed(chunk) {
			p.table.AddShares(q.Stream, q.Value())
			continue
		}
		out.Quantities = append(out.Quantities, q)
	}

	tail := in.Tail
	cursor := in.Skip - len(tail)

	for cursor < len(chunk) {
		idBytes, ok := peek(chunk, tail, cursor, wire.StreamIDLength)
		if !ok {
			out.Tail = carry(chunk, tail, cursor)
			p.metrics.IncSplitHeader()
			return out
		}

		id := wire.DecodeStreamID(idBytes)
		if skip := p.table.PendingSkip(id); skip > 0 {
			p.table.ClearPendingSkip(id)
			p.metrics.IncResumedSegment()
			cursor += int(skip) + wire.PacketInfoLength
			continue
		}

		prefix, ok := peek(chunk, tail, cursor, wire.PrefixLength)
		if !ok {
			out.Tail = carry(chunk, tail, cursor)
			p.metrics.IncSplitHeader()
			return out
		}

		h := wire.DecodeHeader(prefix)
		p.table.Touch(h.Stream)

		if err := p.policy.Check(h); err != nil {
			out.Aborted = true
			out.Err = asDecodeError(h, err)
			return out
		}

		if h.Truncated() {
			p.table.SetPendingSkip(h.Stream, h.Remaining())
			p.metrics.IncTruncatedBody()
			cursor += h.SegmentLength()
			continue
		}

		p.metrics.IncRecordDecoded()
		kind, code, known := wire.DecodeKind(prefix)
		if !known {
			p.table.CountUnknown(h.Stream)
			p.noteUnknown(h, code)
			p.metrics.IncUnknownKind()
			cursor += h.RecordLength()
			continue
		}
		p.table.Count(h.Stream, kind)

		if kind == types.KindExecuted {
			if q, split := p.quantity(chunk, cursor, h.Stream); split {
				out.Quantities = append(out.Quantities, q)
				p.metrics.IncSplitQuantity()
			}
		}

		cursor += h.RecordLength()
	}

	if cursor > len(chunk) {
		out.Skip = cursor - len(chunk)
	}
	return out
}

// quantity adds the executed quantity of the record at recordStart when the
// field lies inside chunk. Otherwise it returns the pending split field.
func (p *Processor) quantity(chunk []byte, recordStart int, id types.StreamID) (SplitQuantity, bool) {
	span := wire.LocateQuantity(len(chunk), recordStart)
	if span.Complete() {
		p.table.AddShares(id, wire.DecodeQuantity(chunk[span.Start:]))
		return SplitQuantity{}, false
	}

	q := SplitQuantity{Stream: id, Offset: span.ResumeAt}
	if span.Present > 0 {
		q.N = copy(q.Have[:], chunk[span.Start:])
	}
	return q, true
}

// peek returns n bytes starting at cursor. A negative cursor addresses the
// carried tail, whose last byte sits just before chunk[0].
func peek(chunk, tail []byte, cursor, n int) ([]byte, bool) {
	if cursor+n > len(chunk) {
		return nil, false
	}
	if cursor >= 0 {
		return chunk[cursor : cursor+n], true
	}

	from := len(tail) + cursor
	if from+n <= len(tail) {
		return tail[from : from+n], true
	}
	buf := make([]byte, 0, n)
	buf = append(buf, tail[from:]...)
	return append(buf, chunk[:cursor+n]...), true
}

// carry copies the bytes from cursor to the end of chunk, tail included.
func carry(chunk, tail []byte, cursor int) []byte {
	var out []byte
	if cursor < 0 {
		out = append(out, tail[len(tail)+cursor:]...)
		cursor = 0
	}
	return append(out, chunk[cursor:]...)
}

func asDecodeError(h wire.Header, err error) *wire.DecodeError {
	var decErr *wire.DecodeError
	if errors.As(err, &decErr) {
		return decErr
	}
	decErr = wire.NewMalformedLength(h)
	decErr.Err = err
	return decErr
}
