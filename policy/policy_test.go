package policy_test

import (
	"errors"
	"testing"

	"github.com/pithecene-io/packetcount/policy"
	"github.com/pithecene-io/packetcount/wire"
)

func TestStrictPolicy_LegalLengths(t *testing.T) {
	pol := policy.NewStrictPolicy()

	for _, n := range wire.LegalLengths() {
		if err := pol.Check(wire.Header{Stream: 1, MessageLength: n}); err != nil {
			t.Errorf("Check(length=%d) = %v, want nil", n, err)
		}
	}

	stats := pol.Stats()
	if stats.Checked != int64(len(wire.LegalLengths())) {
		t.Errorf("Checked = %d, want %d", stats.Checked, len(wire.LegalLengths()))
	}
	if stats.Rejected != 0 {
		t.Errorf("Rejected = %d, want 0", stats.Rejected)
	}
}

func TestStrictPolicy_RejectsAbnormalLength(t *testing.T) {
	pol := policy.NewStrictPolicy()

	err := pol.Check(wire.Header{Stream: 4, MessageLength: 13})
	if err == nil {
		t.Fatal("expected error for length 13")
	}

	var decErr *wire.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *wire.DecodeError, got %T", err)
	}
	if decErr.Kind != wire.ErrorMalformedLength {
		t.Errorf("Kind = %v, want %v", decErr.Kind, wire.ErrorMalformedLength)
	}
	if decErr.Length != 13 || decErr.Stream != 4 {
		t.Errorf("unexpected error fields %+v", decErr)
	}
	if !wire.IsFatal(err) {
		t.Error("malformed length should be fatal")
	}

	stats := pol.Stats()
	if stats.Rejected != 1 || stats.RejectedLengths[13] != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestLenientPolicy_AcceptsEverything(t *testing.T) {
	pol := policy.NewLenientPolicy()

	for _, n := range []uint16{0, 13, 41, 0xFFFF} {
		if err := pol.Check(wire.Header{MessageLength: n}); err != nil {
			t.Errorf("Check(length=%d) = %v, want nil", n, err)
		}
	}

	stats := pol.Stats()
	if stats.Checked != 4 || stats.Rejected != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestStats_SnapshotIsCopy(t *testing.T) {
	pol := policy.NewStrictPolicy()
	_ = pol.Check(wire.Header{MessageLength: 13})

	snap := pol.Stats()
	snap.RejectedLengths[13] = 99

	if got := pol.Stats().RejectedLengths[13]; got != 1 {
		t.Errorf("mutating a snapshot changed the policy: got %d", got)
	}
}

func TestNewAndParse(t *testing.T) {
	if got := policy.New(true).Name(); got != policy.NameStrict {
		t.Errorf("New(true).Name() = %q", got)
	}
	if got := policy.New(false).Name(); got != policy.NameLenient {
		t.Errorf("New(false).Name() = %q", got)
	}

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"strict", policy.NameStrict, false},
		{"STRICT", policy.NameStrict, false},
		{" lenient ", policy.NameLenient, false},
		{"", policy.NameLenient, false},
		{"buffered", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pol, err := policy.Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && pol.Name() != tt.want {
				t.Errorf("Parse(%q).Name() = %q, want %q", tt.input, pol.Name(), tt.want)
			}
		})
	}
}
