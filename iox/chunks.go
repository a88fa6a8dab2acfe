package iox

import (
	"errors"
	"fmt"
	"io"
)

// ReadChunks reads r in chunks of exactly size bytes and calls fn with each.
// Only the final chunk may be shorter. The slice passed to fn is reused
// between calls; fn must copy anything it keeps.
//
// Reading stops at the first error from r or fn. io.EOF is not an error.
func ReadChunks(r io.Reader, size int, fn func(chunk []byte) error) error {
	if size <= 0 {
		return fmt.Errorf("invalid chunk size %d", size)
	}

	buf := make([]byte, size)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if ferr := fn(buf[:n]); ferr != nil {
				return ferr
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		default:
			return err
		}
	}
}
