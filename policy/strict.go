package policy

import "github.com/pithecene-io/packetcount/wire"

// StrictPolicy rejects message lengths outside the protocol's fixed set.
//
// A rejection is fatal to the file being processed: the decoder stops and
// reports the counters accumulated before the offending record.
type StrictPolicy struct {
	stats *statsRecorder
}

// NewStrictPolicy creates a new strict policy.
func NewStrictPolicy() *StrictPolicy {
	return &StrictPolicy{stats: newStatsRecorder()}
}

// Name implements Policy.
func (p *StrictPolicy) Name() string {
	return NameStrict
}

// Check implements Policy.
// Returns a *wire.DecodeError with Kind=ErrorMalformedLength on rejection.
func (p *StrictPolicy) Check(h wire.Header) error {
	p.stats.incChecked()
	if wire.IsLegalLength(h.MessageLength) {
		return nil
	}
	p.stats.incRejected(h.MessageLength)
	return wire.NewMalformedLength(h)
}

// Stats implements Policy.
func (p *StrictPolicy) Stats() Stats {
	return p.stats.snapshot()
}

// Verify StrictPolicy implements Policy.
var _ Policy = (*StrictPolicy)(nil)
