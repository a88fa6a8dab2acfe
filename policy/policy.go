// Package policy decides which record envelopes are acceptable.
//
// The only validation the decoder performs is a sanity check of the declared
// message length. A Policy owns that decision so the chunk processor stays
// free of configuration:
//   - StrictPolicy rejects any length outside the protocol's fixed set,
//     which aborts the current file
//   - LenientPolicy accepts everything and skips the check entirely
package policy

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pithecene-io/packetcount/wire"
)

// Policy names accepted by Parse.
const (
	NameStrict  = "strict"
	NameLenient = "lenient"
)

// Policy validates record envelopes before their bodies are decoded.
type Policy interface {
	// Name returns the policy name for logs and summaries.
	Name() string

	// Check validates a decoded header.
	// A non-nil error is fatal to the current file.
	Check(h wire.Header) error

	// Stats returns a snapshot of the policy's counters.
	Stats() Stats
}

// Stats represents policy observability counters.
type Stats struct {
	// Checked is the number of headers examined.
	Checked int64
	// Rejected is the number of headers that failed the check.
	Rejected int64
	// RejectedLengths maps offending message lengths to their counts.
	RejectedLengths map[uint16]int64
}

// New returns the strict policy when strict is true, otherwise the lenient one.
func New(strict bool) Policy {
	if strict {
		return NewStrictPolicy()
	}
	return NewLenientPolicy()
}

// Parse returns the policy registered under name.
func Parse(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameStrict:
		return NewStrictPolicy(), nil
	case NameLenient, "":
		return NewLenientPolicy(), nil
	default:
		return nil, fmt.Errorf("invalid policy: %q (must be %s or %s)", name, NameStrict, NameLenient)
	}
}

// statsRecorder is an internal helper for thread-safe stats management.
type statsRecorder struct {
	mu    sync.Mutex
	stats Stats
}

func newStatsRecorder() *statsRecorder {
	return &statsRecorder{
		stats: Stats{RejectedLengths: make(map[uint16]int64)},
	}
}

func (r *statsRecorder) incChecked() {
	r.mu.Lock()
	r.stats.Checked++
	r.mu.Unlock()
}

func (r *statsRecorder) incRejected(length uint16) {
	r.mu.Lock()
	r.stats.Rejected++
	r.stats.RejectedLengths[length]++
	r.mu.Unlock()
}

func (r *statsRecorder) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.stats
	s.RejectedLengths = make(map[uint16]int64, len(r.stats.RejectedLengths))
	for k, v := range r.stats.RejectedLengths {
		s.RejectedLengths[k] = v
	}
	return s
}
