// Package cmd provides CLI commands for the packetcount binary.
package cmd

import (
	"os"

	"github.com/urfave/cli/v2"
)

// Shared output flags.
var (
	// FormatFlag selects output format: text, json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables the Bubble Tea summary viewer.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Open the interactive summary viewer (count with a single file only)",
	}
)

// ReadOnlyFlags returns the shared output flags.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// DecodeFlags returns the flags shared by commands that decode captures.
func DecodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file (default: ./packetcount.yaml if present)",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Abort a file at the first record whose length is not a known message length",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "Length policy: strict or lenient (same as --strict / --strict=false)",
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "Read granularity in bytes",
			Value: 2048,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: "warn",
		},
		// Adapter flags
		&cli.StringFlag{
			Name:  "adapter",
			Usage: "Notify on file completion: webhook or redis",
		},
		&cli.StringFlag{
			Name:  "adapter-url",
			Usage: "Adapter endpoint (webhook URL or redis://host:port)",
		},
		&cli.StringFlag{
			Name:  "adapter-channel",
			Usage: "Redis pub/sub channel",
		},
		&cli.StringFlag{
			Name:  "adapter-encoding",
			Usage: "Redis payload encoding: json or msgpack",
		},
		&cli.StringSliceFlag{
			Name:  "adapter-header",
			Usage: "Webhook header as key=value (repeatable)",
		},
		&cli.DurationFlag{
			Name:  "adapter-timeout",
			Usage: "Per-attempt adapter timeout",
		},
		&cli.IntFlag{
			Name:  "adapter-retries",
			Usage: "Adapter retry attempts",
			Value: 3,
		},
	}
}

// CountFlags returns the flags of the count command.
func CountFlags() []cli.Flag {
	return append(ReadOnlyFlags(), DecodeFlags()...)
}

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
