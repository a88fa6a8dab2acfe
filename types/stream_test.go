package types //nolint:revive // types is a valid package name

import "testing"

func TestParseKind_KnownCodes(t *testing.T) {
	tests := []struct {
		code byte
		want MessageKind
	}{
		{'A', KindAccepted},
		{'S', KindSystemEvent},
		{'U', KindReplaced},
		{'C', KindCanceled},
		{'E', KindExecuted},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got, ok := ParseKind(tt.code)
			if !ok {
				t.Fatalf("ParseKind(%q) reported unknown", tt.code)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.code, got, tt.want)
			}
			if got.Code() != tt.code {
				t.Errorf("%v.Code() = %q, want %q", got, got.Code(), tt.code)
			}
		})
	}
}

func TestParseKind_UnknownCodes(t *testing.T) {
	for _, code := range []byte{0, 'a', 'e', 'Z', 'Q', 0xFF} {
		if k, ok := ParseKind(code); ok {
			t.Errorf("ParseKind(%q) = %v, want unknown", code, k)
		}
	}
}

func TestKinds_ReportingOrder(t *testing.T) {
	kinds := Kinds()
	for i, k := range kinds {
		if int(k) != i {
			t.Errorf("Kinds()[%d] = %d, want %d", i, k, i)
		}
	}
	if kinds[KindExecuted].String() != "Executed" {
		t.Errorf("unexpected name %q", kinds[KindExecuted].String())
	}
}

func TestStreamCounters_Total(t *testing.T) {
	c := StreamCounters{Unknown: 2}
	c.Messages[KindAccepted] = 3
	c.Messages[KindExecuted] = 4

	if got := c.Total(); got != 9 {
		t.Errorf("Total() = %d, want 9", got)
	}
	if got := c.Count(KindExecuted); got != 4 {
		t.Errorf("Count(Executed) = %d, want 4", got)
	}
	if got := c.Count(MessageKind(9)); got != 0 {
		t.Errorf("Count(out of range) = %d, want 0", got)
	}
}

func TestNewStreamSummary(t *testing.T) {
	var c StreamCounters
	c.Messages[KindAccepted] = 1
	c.Messages[KindSystemEvent] = 2
	c.Messages[KindReplaced] = 3
	c.Messages[KindCanceled] = 4
	c.Messages[KindExecuted] = 5
	c.Unknown = 6
	c.ExecutedShares = 700

	s := NewStreamSummary(42, c)
	if s.Stream != 42 {
		t.Errorf("Stream = %d, want 42", s.Stream)
	}
	for _, k := range Kinds() {
		if s.Count(k) != c.Count(k) {
			t.Errorf("Count(%v) = %d, want %d", k, s.Count(k), c.Count(k))
		}
	}
	if s.Unknown != 6 || s.ExecutedShares != 700 {
		t.Errorf("unexpected summary %+v", s)
	}
}
