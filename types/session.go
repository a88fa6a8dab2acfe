// Package types defines core domain types for packetcount.
//
//nolint:revive // types is a common Go package naming convention
package types

import (
	"errors"

	"github.com/google/uuid"
)

// SessionMeta identifies one decode session and the file it is working on.
// Every log entry carries these fields.
type SessionMeta struct {
	// SessionID is unique per CLI invocation. Shared by every file of a session.
	SessionID string
	// File is the capture path currently being decoded. Empty between files.
	File string
	// Strict records whether abnormal message lengths abort the file.
	Strict bool
}

// NewSessionMeta creates session metadata with a fresh session id.
func NewSessionMeta(strict bool) *SessionMeta {
	return &SessionMeta{
		SessionID: uuid.NewString(),
		Strict:    strict,
	}
}

// ForFile returns a copy of the metadata bound to path.
func (m *SessionMeta) ForFile(path string) *SessionMeta {
	cp := *m
	cp.File = path
	return &cp
}

// Validate checks that the session id is present and well-formed.
func (m *SessionMeta) Validate() error {
	if m.SessionID == "" {
		return errors.New("session_id must be non-empty")
	}
	if _, err := uuid.Parse(m.SessionID); err != nil {
		return errors.New("session_id must be a UUID")
	}
	return nil
}
