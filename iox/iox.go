// Package iox provides I/O helpers for chunked capture reads and for
// cleanup calls whose errors cannot be acted on.
package iox

import "io"

// DiscardClose closes c and drops the error. Capture files are opened
// read-only, so a failed close loses nothing:
//
//	defer iox.DiscardClose(f)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc adapts c for t.Cleanup:
//
//	t.Cleanup(iox.CloseFunc(adapter))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// DiscardErr runs fn and drops its error, e.g. a logger flush at exit:
//
//	iox.DiscardErr(logger.Sync)
func DiscardErr(fn func() error) { _ = fn() }
