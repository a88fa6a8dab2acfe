// Package wire decodes the record layout of an OUCH-style capture.
//
// Every record starts with an 8-byte envelope followed by the message:
//
//	[stream id (2)][packet length (4)][message length (2)][reserved (1)][type (1)][payload...]
//
// All integers are big-endian. The packet length counts the bytes that follow
// the 6-byte packet info in this segment; the message length counts the
// message itself, starting at the reserved byte. A full record therefore
// occupies message length + 8 bytes, and a segment whose packet length is
// smaller than message length + 2 carries only the front of its message.
//
// Decoders in this package never validate and never read past the slice they
// are given. Callers decide how many bytes are available.
package wire

import (
	"encoding/binary"

	"github.com/pithecene-io/packetcount/types"
)

// Layout constants.
const (
	// PacketInfoLength is the stream id plus the packet length.
	PacketInfoLength = 6
	// BlockInfoLength is the message length field.
	BlockInfoLength = 2
	// HeaderLength is the full envelope in front of every message.
	HeaderLength = PacketInfoLength + BlockInfoLength
	// StreamIDLength is the number of bytes needed to read a stream id.
	StreamIDLength = 2
	// TypeOffset is the record offset of the message type code.
	TypeOffset = 9
	// PrefixLength is the number of bytes needed to decode a header and type code.
	PrefixLength = TypeOffset + 1
	// QuantityOffset is the record offset of the executed share quantity.
	// The layout is fixed for executed messages; it is not derived from the header.
	QuantityOffset = 32
	// QuantityLength is the width of the executed share quantity.
	QuantityLength = 4
)

// legalLengths are the message lengths the protocol defines.
var legalLengths = map[uint16]bool{
	11: true, // system event
	29: true, // canceled
	41: true, // executed
	66: true, // accepted
	80: true, // replaced
}

// IsLegalLength reports whether n is one of the protocol's fixed message lengths.
func IsLegalLength(n uint16) bool {
	return legalLengths[n]
}

// LegalLengths returns the protocol's fixed message lengths in ascending order.
func LegalLengths() []uint16 {
	return []uint16{11, 29, 41, 66, 80}
}

// Header is the decoded record envelope.
type Header struct {
	Stream types.StreamID
	// PacketLength is the byte count following the packet info in this segment.
	PacketLength uint32
	// MessageLength is the declared length of the message.
	MessageLength uint16
}

// DecodeStreamID reads the stream id at the front of b.
// b must hold at least StreamIDLength bytes.
func DecodeStreamID(b []byte) types.StreamID {
	return types.StreamID(binary.BigEndian.Uint16(b[0:2]))
}

// DecodeHeader reads the envelope at the front of b.
// b must hold at least HeaderLength bytes.
func DecodeHeader(b []byte) Header {
	return Header{
		Stream:        DecodeStreamID(b),
		PacketLength:  binary.BigEndian.Uint32(b[2:6]),
		MessageLength: binary.BigEndian.Uint16(b[6:8]),
	}
}

// Truncated reports whether the segment ends before its message does.
func (h Header) Truncated() bool {
	return uint64(h.PacketLength) < uint64(h.MessageLength)+BlockInfoLength
}

// Remaining returns the message bytes carried by a later segment of the stream.
// It is zero unless Truncated reports true.
func (h Header) Remaining() uint32 {
	if !h.Truncated() {
		return 0
	}
	return uint32(h.MessageLength) + BlockInfoLength - h.PacketLength
}

// SegmentLength returns the bytes occupied by a truncated segment.
func (h Header) SegmentLength() int {
	return int(h.PacketLength) + PacketInfoLength
}

// RecordLength returns the bytes occupied by a complete record.
func (h Header) RecordLength() int {
	return int(h.MessageLength) + HeaderLength
}
