package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/packetcount/iox"
	"github.com/pithecene-io/packetcount/log"
	"github.com/pithecene-io/packetcount/metrics"
	"github.com/pithecene-io/packetcount/policy"
	"github.com/pithecene-io/packetcount/runtime"
	"github.com/pithecene-io/packetcount/types"
)

// newSession wires a decode session from resolved settings.
// The returned cleanup closes the adapter and flushes the logger.
func newSession(c *cli.Context, s *decodeSettings, strict bool) (*runtime.Session, func(), error) {
	meta := types.NewSessionMeta(strict)
	logger := log.NewLogger(meta, s.logLevel).WithOutput(c.App.ErrWriter)
	collector := metrics.NewCollector(policy.New(strict).Name(), meta.SessionID)

	ad, err := buildAdapter(s.adapter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create adapter: %w", err)
	}

	sess, err := runtime.NewSession(&runtime.SessionConfig{
		Meta:      meta,
		ChunkSize: s.chunkSize,
		Logger:    logger,
		Collector: collector,
		Adapter:   ad,
	})
	if err != nil {
		if ad != nil {
			_ = ad.Close()
		}
		return nil, nil, err
	}

	logger.Sugar().Debugf("session %s started: policy=%s chunk_size=%d adapter=%t",
		meta.SessionID, collector.Snapshot().Policy, s.chunkSize, ad != nil)

	cleanup := func() {
		if ad != nil {
			if err := ad.Close(); err != nil {
				logger.Warn("adapter close failed", map[string]any{"error": err.Error()})
			}
		}
		iox.DiscardErr(logger.Sync)
	}
	return sess, cleanup, nil
}
