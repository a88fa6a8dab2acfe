package wire

import (
	"errors"
	"fmt"

	"github.com/pithecene-io/packetcount/types"
)

// DecodeErrorKind classifies record decoding errors.
type DecodeErrorKind int

const (
	// ErrorMalformedLength indicates a message length outside the legal set.
	ErrorMalformedLength DecodeErrorKind = iota
	// ErrorUnknownKind indicates a type code matching no message kind.
	ErrorUnknownKind
)

// String returns the kind name used in logs and summaries.
func (k DecodeErrorKind) String() string {
	switch k {
	case ErrorMalformedLength:
		return "malformed_length"
	case ErrorUnknownKind:
		return "unknown_kind"
	default:
		return fmt.Sprintf("decode_error(%d)", int(k))
	}
}

// DecodeError describes a record that could not be decoded as expected.
type DecodeError struct {
	Kind   DecodeErrorKind
	Stream types.StreamID
	// Length is the declared message length of the record.
	Length uint16
	// Code is the raw type code of the record.
	Code byte
	Msg  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if this error stops the current file.
// Only malformed lengths are fatal; unknown kinds are tallied and skipped.
func (e *DecodeError) IsFatal() bool {
	return e.Kind == ErrorMalformedLength
}

// IsFatal returns true if err is a fatal decode error.
func IsFatal(err error) bool {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.IsFatal()
	}
	return false
}

// NewMalformedLength builds the error for a message length outside the legal set.
func NewMalformedLength(h Header) *DecodeError {
	return &DecodeError{
		Kind:   ErrorMalformedLength,
		Stream: h.Stream,
		Length: h.MessageLength,
		Msg:    fmt.Sprintf("stream %d: message with abnormal length %d", h.Stream, h.MessageLength),
	}
}

// NewUnknownKind builds the error for an unrecognised type code.
func NewUnknownKind(h Header, code byte) *DecodeError {
	return &DecodeError{
		Kind:   ErrorUnknownKind,
		Stream: h.Stream,
		Length: h.MessageLength,
		Code:   code,
		Msg:    fmt.Sprintf("stream %d: unknown message type 0x%02x", h.Stream, code),
	}
}
