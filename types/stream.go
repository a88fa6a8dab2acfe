package types

import "fmt"

// StreamID identifies an independent message sub-stream within one capture.
type StreamID uint16

// MessageKind is one of the outbound order-protocol message kinds that are tallied.
type MessageKind uint8

// Message kinds in reporting order.
const (
	KindAccepted MessageKind = iota
	KindSystemEvent
	KindReplaced
	KindCanceled
	KindExecuted
)

// NumKinds is the number of tallied message kinds.
const NumKinds = 5

// Wire type codes for each kind.
const (
	CodeAccepted    byte = 'A'
	CodeSystemEvent byte = 'S'
	CodeReplaced    byte = 'U'
	CodeCanceled    byte = 'C'
	CodeExecuted    byte = 'E'
)

// Kinds returns all message kinds in reporting order.
func Kinds() [NumKinds]MessageKind {
	return [NumKinds]MessageKind{KindAccepted, KindSystemEvent, KindReplaced, KindCanceled, KindExecuted}
}

// ParseKind maps a wire type code to its kind.
// The second result is false for any code outside the five known kinds.
func ParseKind(code byte) (MessageKind, bool) {
	switch code {
	case CodeAccepted:
		return KindAccepted, true
	case CodeSystemEvent:
		return KindSystemEvent, true
	case CodeReplaced:
		return KindReplaced, true
	case CodeCanceled:
		return KindCanceled, true
	case CodeExecuted:
		return KindExecuted, true
	default:
		return 0, false
	}
}

// Code returns the wire type code for the kind.
func (k MessageKind) Code() byte {
	switch k {
	case KindAccepted:
		return CodeAccepted
	case KindSystemEvent:
		return CodeSystemEvent
	case KindReplaced:
		return CodeReplaced
	case KindCanceled:
		return CodeCanceled
	case KindExecuted:
		return CodeExecuted
	default:
		return 0
	}
}

// String returns the human-readable kind name used in summaries.
func (k MessageKind) String() string {
	switch k {
	case KindAccepted:
		return "Accepted"
	case KindSystemEvent:
		return "System Event"
	case KindReplaced:
		return "Replaced"
	case KindCanceled:
		return "Canceled"
	case KindExecuted:
		return "Executed"
	default:
		return fmt.Sprintf("MessageKind(%d)", uint8(k))
	}
}

// StreamCounters accumulates per-stream tallies.
type StreamCounters struct {
	// Messages counts decoded records by kind, indexed by MessageKind.
	Messages [NumKinds]uint32
	// Unknown counts records whose type code matched no kind.
	Unknown uint32
	// ExecutedShares is the wrapping 32-bit sum of executed quantities.
	ExecutedShares uint32
}

// Count returns the tally for one kind.
func (c StreamCounters) Count(k MessageKind) uint32 {
	if int(k) >= NumKinds {
		return 0
	}
	return c.Messages[k]
}

// Total returns the number of records counted, unknown kinds included.
func (c StreamCounters) Total() uint64 {
	total := uint64(c.Unknown)
	for _, n := range c.Messages {
		total += uint64(n)
	}
	return total
}
