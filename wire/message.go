package wire

import (
	"encoding/binary"

	"github.com/pithecene-io/packetcount/types"
)

// DecodeType reads the message type code of the record at the front of b.
// b must hold at least PrefixLength bytes.
func DecodeType(b []byte) byte {
	return b[TypeOffset]
}

// DecodeKind reads the message type code and maps it to a kind.
// The second result is false for unknown codes; the raw code is always returned.
func DecodeKind(b []byte) (types.MessageKind, byte, bool) {
	code := DecodeType(b)
	kind, ok := types.ParseKind(code)
	return kind, code, ok
}

// DecodeQuantity reads a big-endian quantity from the front of b.
func DecodeQuantity(b []byte) uint32 {
	return binary.BigEndian.Uint32(b[0:QuantityLength])
}

// QuantitySpan locates an executed quantity field relative to one buffer.
type QuantitySpan struct {
	// Start is the buffer offset of the field's first byte.
	Start int
	// Present is how many of the field's bytes lie inside the buffer.
	Present int
	// Missing is QuantityLength minus Present.
	Missing int
	// ResumeAt is the offset in the next buffer where the missing bytes begin.
	ResumeAt int
}

// Complete reports whether the whole field lies inside the buffer.
func (s QuantitySpan) Complete() bool {
	return s.Missing == 0
}

// LocateQuantity finds the executed quantity of the record starting at
// recordStart in a buffer of bufLen bytes. recordStart may be negative when
// the record's first bytes were carried over from a previous buffer.
func LocateQuantity(bufLen, recordStart int) QuantitySpan {
	start := recordStart + QuantityOffset
	span := QuantitySpan{Start: start}

	switch {
	case start+QuantityLength <= bufLen:
		span.Present = QuantityLength
	case start >= bufLen:
		span.ResumeAt = start - bufLen
	default:
		span.Present = bufLen - start
	}
	span.Missing = QuantityLength - span.Present
	return span
}
