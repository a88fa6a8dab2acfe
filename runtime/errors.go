package runtime

import (
	"errors"
	"fmt"
)

// FileError classifies failures that stop a file before it is summarized.
// A file aborted by strict validation is not a FileError: it still yields
// a summary.
type FileError struct {
	// Kind indicates whether the file could not be opened, could not be
	// read to the end, or the session was canceled.
	Kind FileErrorKind
	// Path is the capture file path.
	Path string
	// Err is the underlying error.
	Err error
}

// FileErrorKind classifies file errors.
type FileErrorKind int

const (
	// FileErrorOpen indicates the file could not be opened.
	FileErrorOpen FileErrorKind = iota
	// FileErrorRead indicates a read failed part way through the file.
	FileErrorRead
	// FileErrorCanceled indicates context cancellation between chunks.
	FileErrorCanceled
)

func (e *FileError) Error() string {
	switch e.Kind {
	case FileErrorOpen:
		return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
	case FileErrorRead:
		return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsUnreadable returns true if the error means the file could not be read.
func IsUnreadable(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind == FileErrorOpen || fileErr.Kind == FileErrorRead
	}
	return false
}

// IsCanceledError returns true if the error is due to context cancellation.
func IsCanceledError(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind == FileErrorCanceled
	}
	return false
}
