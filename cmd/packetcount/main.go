// Package main provides the packetcount CLI entrypoint.
//
// Usage:
//
//	packetcount count [options] FILE...
//	packetcount shell [options]
//	packetcount version
//
// Exit codes:
//   - 0: every file decoded to the end
//   - 1: a file could not be read, or invalid usage
//   - 2: interrupted
//   - 3: strict validation aborted a file
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/packetcount/cli/cmd"
	"github.com/pithecene-io/packetcount/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "packetcount",
		Usage:          "Count order-protocol messages per stream in packet captures",
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.CountCommand(),
			cmd.ShellCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled the exit for cli.ExitCoder errors.
		os.Exit(1)
	}
}

// exitErrHandler prints the error, if any, and exits with its code.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}
	code, msg := exitStatus(err)
	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(code)
}

// exitStatus maps an action error to an exit code and the message to print.
// cli.Exit("", N) carries no message worth printing.
func exitStatus(err error) (int, string) {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg == fmt.Sprintf("exit status %d", code) {
			msg = ""
		}
		return code, msg
	}
	return 1, fmt.Sprintf("Error: %v", err)
}
