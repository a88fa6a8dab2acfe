package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/packetcount/cli/render"
	"github.com/pithecene-io/packetcount/runtime"
	"github.com/pithecene-io/packetcount/types"
)

// Shell prompts and messages.
const (
	strictPrompt = "Stop decoding a file when a message length is not one of the known lengths? (Y/N)"
	pathPrompt   = "Please enter the absolute path of the .packets file, or \"QUIT\" to quit..."
	quitCommand  = "QUIT"
	openFailed   = "Failed to open file. Double-check the path and enter again..."
	abortNotice  = "!!!!!!!!!!An error has occurred, please refer back to the output"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Interactively decode capture files, one path at a time",
		Flags:  DecodeFlags(),
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	settings, err := resolveSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), runtime.ExitCodeUnreadable)
	}

	sh := &shell{
		in:     bufio.NewScanner(c.App.Reader),
		out:    c.App.Writer,
		errOut: c.App.ErrWriter,
	}
	sh.header()

	strict := settings.strict
	if !settings.strictSet {
		var ok bool
		if strict, ok = sh.askStrict(); !ok {
			return nil
		}
	}

	sess, cleanup, err := newSession(c, settings, strict)
	if err != nil {
		return cli.Exit(err.Error(), runtime.ExitCodeUnreadable)
	}
	defer cleanup()

	for {
		path, ok := sh.prompt(pathPrompt)
		if !ok || path == quitCommand {
			return nil
		}

		res, err := sess.ProcessFile(c.Context, path)
		switch {
		case err == nil:
		case isOpenError(err):
			fmt.Fprintln(sh.errOut, openFailed)
			continue
		case runtime.IsUnreadable(err):
			fmt.Fprintf(sh.errOut, "Error: %v\n", err)
			continue
		default:
			return cli.Exit(err.Error(), runtime.ExitCodeCanceled)
		}

		sh.report(res.Summary)
	}
}

// shell is the line-oriented conversation of the shell command.
type shell struct {
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
}

func (s *shell) header() {
	fmt.Fprintln(s.out, "============================================")
	fmt.Fprintf(s.out, "|%s|\n", center("packetcount "+types.Version, 42))
	fmt.Fprintln(s.out, "============================================")
}

// askStrict repeats the question until the answer is exactly Y or N.
// Returns false if input ends first.
func (s *shell) askStrict() (strict, ok bool) {
	for {
		answer, more := s.prompt(strictPrompt)
		if !more {
			return false, false
		}
		switch answer {
		case "Y":
			return true, true
		case "N":
			return false, true
		}
	}
}

// prompt prints msg and reads one line. Returns false at end of input.
func (s *shell) prompt(msg string) (string, bool) {
	fmt.Fprintln(s.out, msg)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimRight(s.in.Text(), "\r"), true
}

func (s *shell) report(summary *types.FileSummary) {
	if err := render.WriteSummaryText(s.out, summary); err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	if summary.Aborted() {
		fmt.Fprintln(s.errOut, abortNotice)
		fmt.Fprintln(s.errOut)
	}
}

func isOpenError(err error) bool {
	var fileErr *runtime.FileError
	return errors.As(err, &fileErr) && fileErr.Kind == runtime.FileErrorOpen
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-len(text)-left)
}
