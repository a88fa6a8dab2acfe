package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/packetcount/cli/render"
	"github.com/pithecene-io/packetcount/cli/tui"
	"github.com/pithecene-io/packetcount/runtime"
	"github.com/pithecene-io/packetcount/types"
)

// CountCommand returns the count command.
// Count decodes each capture file in order and renders one report per file.
func CountCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Count messages per stream in one or more capture files",
		ArgsUsage: "FILE...",
		Flags:     CountFlags(),
		Action:    countAction,
	}
}

func countAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("count requires at least one FILE", runtime.ExitCodeUnreadable)
	}
	if c.Bool("tui") && c.NArg() > 1 {
		return cli.Exit("--tui shows a single file; pass exactly one FILE", runtime.ExitCodeUnreadable)
	}

	settings, err := resolveSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), runtime.ExitCodeUnreadable)
	}

	r, err := newReportRenderer(c, settings.format)
	if err != nil {
		return cli.Exit(err.Error(), runtime.ExitCodeUnreadable)
	}

	sess, cleanup, err := newSession(c, settings, settings.strict)
	if err != nil {
		return cli.Exit(err.Error(), runtime.ExitCodeUnreadable)
	}
	defer cleanup()

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	var (
		summaries []*types.FileSummary
		errs      []error
	)
	for _, path := range c.Args().Slice() {
		res, err := sess.ProcessFile(ctx, path)
		if err != nil {
			errs = append(errs, err)
			fmt.Fprintf(c.App.ErrWriter, "Error: %v\n", err)
			if runtime.IsCanceledError(err) {
				break
			}
			continue
		}
		summaries = append(summaries, res.Summary)

		if c.Bool("tui") {
			err = showTUI(c, res.Summary)
		} else {
			err = r.RenderReport(render.Report{Summary: res.Summary, Metrics: &res.Metrics})
		}
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
	}

	if code := runtime.DetermineExitCode(summaries, errs); code != runtime.ExitCodeCompleted {
		return cli.Exit("", code)
	}
	return nil
}

// newReportRenderer builds a renderer for an already-resolved format name.
func newReportRenderer(c *cli.Context, formatName string) (*render.Renderer, error) {
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = render.DefaultFormat(os.Stdout)
	}
	return render.NewRendererWithWriter(format, c.Bool("no-color"), c.App.Writer), nil
}

// showTUI opens the viewer, or prints its static rendering when no
// terminal is attached.
func showTUI(c *cli.Context, summary *types.FileSummary) error {
	if !isStderrTTY() {
		_, err := fmt.Fprintln(c.App.Writer, tui.RenderStatic(summary))
		return err
	}
	r := render.NewRendererWithWriter(render.FormatText, false, c.App.Writer)
	return r.RenderTUI(summary)
}
