package processor

import (
	"github.com/pithecene-io/packetcount/types"
	"github.com/pithecene-io/packetcount/wire"
)

// Continuation is the state carried from the end of one chunk to the start
// of the next. The zero value is the state at the start of a file.
//
// At most one of Skip and Tail is set.
type Continuation struct {
	// Skip is the number of bytes at the front of the next chunk that belong
	// to a record already handled.
	Skip int
	// Tail holds the front of a record whose prefix was cut by the chunk end.
	// The next chunk resumes decoding at that record.
	Tail []byte
	// Quantities are executed quantity fields cut by the chunk end.
	Quantities []SplitQuantity
	// Aborted is set once a fatal decode error was found. It is never cleared.
	Aborted bool
	// Err is the error that aborted the file.
	Err *wire.DecodeError
}

// Pending reports whether the state still waits for bytes of a started record.
func (c Continuation) Pending() bool {
	return c.Skip > 0 || len(c.Tail) > 0 || len(c.Quantities) > 0
}

// TrailingBytes returns how many bytes of a started record are unaccounted
// for when the input ends in this state.
func (c Continuation) TrailingBytes() int {
	n := len(c.Tail)
	if c.Skip > 0 {
		n += c.Skip
	}
	for _, q := range c.Quantities {
		n += wire.QuantityLength - q.N
	}
	return n
}

// SplitQuantity is an executed quantity field whose bytes span chunks.
type SplitQuantity struct {
	// Stream owns the executed record.
	Stream types.StreamID
	// Offset is where the next missing byte sits in the next chunk.
	Offset int
	// Have holds the N bytes seen so far.
	Have [wire.QuantityLength]byte
	N    int
}

// feed consumes the field's bytes from chunk and reports whether the field
// is complete. A field that starts beyond chunk stays pending with its offset
// moved into the following chunk.
func (q *SplitQuantity) feed(chunk []byte) bool {
	if q.Offset >= len(chunk) {
		q.Offset -= len(chunk)
		return false
	}
	q.N += copy(q.Have[q.N:], chunk[q.Offset:])
	q.Offset = 0
	return q.N == wire.QuantityLength
}

// Value decodes the quantity. Only meaningful once all bytes were fed.
func (q SplitQuantity) Value() uint32 {
	return wire.DecodeQuantity(q.Have[:])
}
