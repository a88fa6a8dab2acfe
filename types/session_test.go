package types //nolint:revive // types is a valid package name

import "testing"

func TestNewSessionMeta(t *testing.T) {
	a := NewSessionMeta(true)
	b := NewSessionMeta(false)

	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if a.SessionID == b.SessionID {
		t.Error("session ids should be unique")
	}
	if !a.Strict || b.Strict {
		t.Errorf("Strict = %v/%v, want true/false", a.Strict, b.Strict)
	}
}

func TestSessionMeta_ForFile(t *testing.T) {
	meta := NewSessionMeta(false)
	bound := meta.ForFile("capture.bin")

	if bound.File != "capture.bin" {
		t.Errorf("File = %q, want capture.bin", bound.File)
	}
	if meta.File != "" {
		t.Errorf("ForFile mutated the original: %q", meta.File)
	}
	if bound.SessionID != meta.SessionID {
		t.Error("ForFile changed the session id")
	}
}

func TestSessionMeta_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"empty", "", true},
		{"not a uuid", "session-1", true},
		{"uuid", "7f1c4b0e-2f43-4a8e-9a55-3c1d2b6f9e10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&SessionMeta{SessionID: tt.id}).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
