// Package wiretest builds capture records for tests.
//
// The builders produce the layout documented in package wire. They exist to
// make decoder tests readable and are not a general-purpose encoder.
package wiretest

import (
	"encoding/binary"

	"github.com/pithecene-io/packetcount/types"
	"github.com/pithecene-io/packetcount/wire"
)

// Protocol message lengths per kind.
const (
	LenAccepted    uint16 = 66
	LenSystemEvent uint16 = 11
	LenReplaced    uint16 = 80
	LenCanceled    uint16 = 29
	LenExecuted    uint16 = 41
)

// reservedByte fills the byte between the message length and the type code.
const reservedByte = 'S'

// Record builds a complete record with the given type code and message length.
// The payload after the type code is zero-filled.
func Record(stream types.StreamID, code byte, length uint16) []byte {
	return segment(stream, code, length, uint32(length)+wire.BlockInfoLength)
}

// Accepted builds a complete accepted record.
func Accepted(stream types.StreamID) []byte {
	return Record(stream, types.CodeAccepted, LenAccepted)
}

// SystemEvent builds a complete system event record.
func SystemEvent(stream types.StreamID) []byte {
	return Record(stream, types.CodeSystemEvent, LenSystemEvent)
}

// Replaced builds a complete replaced record.
func Replaced(stream types.StreamID) []byte {
	return Record(stream, types.CodeReplaced, LenReplaced)
}

// Canceled builds a complete canceled record.
func Canceled(stream types.StreamID) []byte {
	return Record(stream, types.CodeCanceled, LenCanceled)
}

// Executed builds a complete executed record carrying shares.
func Executed(stream types.StreamID, shares uint32) []byte {
	rec := Record(stream, types.CodeExecuted, LenExecuted)
	binary.BigEndian.PutUint32(rec[wire.QuantityOffset:], shares)
	return rec
}

// Segmented builds a record whose message is split over two segments of the
// same stream. The first segment declares packetLength, which must be at
// least 2 and smaller than length+2; the second segment carries the rest of
// the message behind its own packet info.
func Segmented(stream types.StreamID, code byte, length uint16, packetLength uint32) (first, rest []byte) {
	first = segment(stream, code, length, packetLength)

	remaining := uint32(length) + wire.BlockInfoLength - packetLength
	rest = make([]byte, wire.PacketInfoLength+int(remaining))
	binary.BigEndian.PutUint16(rest[0:2], uint16(stream))
	binary.BigEndian.PutUint32(rest[2:6], remaining)
	return first, rest
}

// Concat joins records into one capture.
func Concat(records ...[]byte) []byte {
	var n int
	for _, r := range records {
		n += len(r)
	}
	out := make([]byte, 0, n)
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

// Chunks splits data into consecutive chunks of size bytes; the last may be shorter.
func Chunks(data []byte, size int) [][]byte {
	var out [][]byte
	for len(data) > size {
		out = append(out, data[:size])
		data = data[size:]
	}
	if len(data) > 0 {
		out = append(out, data)
	}
	return out
}

// segment builds one segment: the packet info plus packetLength bytes.
func segment(stream types.StreamID, code byte, length uint16, packetLength uint32) []byte {
	buf := make([]byte, wire.PacketInfoLength+int(packetLength))
	binary.BigEndian.PutUint16(buf[0:2], uint16(stream))
	binary.BigEndian.PutUint32(buf[2:6], packetLength)
	if len(buf) >= wire.HeaderLength {
		binary.BigEndian.PutUint16(buf[6:8], length)
	}
	if len(buf) > wire.TypeOffset {
		buf[wire.TypeOffset-1] = reservedByte
		buf[wire.TypeOffset] = code
	}
	return buf
}
