package policy

import "github.com/pithecene-io/packetcount/wire"

// LenientPolicy accepts every header.
// Records with unexpected lengths are decoded and tallied like any other.
type LenientPolicy struct {
	stats *statsRecorder
}

// NewLenientPolicy creates a new lenient policy.
func NewLenientPolicy() *LenientPolicy {
	return &LenientPolicy{stats: newStatsRecorder()}
}

// Name implements Policy.
func (p *LenientPolicy) Name() string {
	return NameLenient
}

// Check implements Policy. It never fails.
func (p *LenientPolicy) Check(_ wire.Header) error {
	p.stats.incChecked()
	return nil
}

// Stats implements Policy.
func (p *LenientPolicy) Stats() Stats {
	return p.stats.snapshot()
}

// Verify LenientPolicy implements Policy.
var _ Policy = (*LenientPolicy)(nil)
