// Package render provides centralized output rendering for the packetcount CLI.
//
// Format selection rules:
//   - If output is a TTY, default to text
//   - If output is not a TTY, default to json
//   - --format flag always overrides defaults
//   - Invalid formats are errors
//
// Color handling:
//   - --no-color affects table output only
//   - TUI mode is unaffected by --no-color (uses its own styling)
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/packetcount/cli/tui"
	"github.com/pithecene-io/packetcount/metrics"
	"github.com/pithecene-io/packetcount/types"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string, returning an error for invalid formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil // Let caller decide default
	default:
		return "", fmt.Errorf("invalid format: %q (must be text, json, table, or yaml)", s)
	}
}

// Report is the payload rendered for one processed file.
type Report struct {
	Summary *types.FileSummary `json:"summary" yaml:"summary"`
	Metrics *metrics.Snapshot  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	noColor bool
	out     io.Writer
}

// NewRenderer creates a renderer from CLI context.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = DefaultFormat(os.Stdout)
	}

	return &Renderer{
		format:  format,
		noColor: c.Bool("no-color"),
		out:     c.App.Writer,
	}, nil
}

// NewRendererWithWriter creates a renderer with a custom writer (for testing).
func NewRendererWithWriter(format Format, noColor bool, out io.Writer) *Renderer {
	return &Renderer{
		format:  format,
		noColor: noColor,
		out:     out,
	}
}

// DefaultFormat picks text for terminals and json otherwise.
func DefaultFormat(f *os.File) Format {
	if isTTY(f) {
		return FormatText
	}
	return FormatJSON
}

// Format returns the selected output format.
func (r *Renderer) Format() Format { return r.format }

// Render outputs arbitrary data in the configured format.
// Text output falls back to the table layout.
func (r *Renderer) Render(data any) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(data)
	case FormatTable, FormatText:
		return r.renderTable(data)
	case FormatYAML:
		return r.renderYAML(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderReport outputs one file's report in the configured format.
func (r *Renderer) RenderReport(rep Report) error {
	if rep.Summary == nil {
		return fmt.Errorf("report has no summary")
	}
	switch r.format {
	case FormatText:
		return WriteSummaryText(r.out, rep.Summary)
	case FormatTable:
		return r.renderReportTable(rep)
	case FormatJSON:
		return r.renderJSON(rep)
	case FormatYAML:
		return r.renderYAML(rep)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderTUI opens the interactive summary viewer.
func (r *Renderer) RenderTUI(summary *types.FileSummary) error {
	return tui.Run(summary)
}

// WriteSummaryText writes the per-stream summary in the classic layout:
// one "Stream <id>" block per stream, each kind on its own line, and the
// executed share total next to the executed count.
func WriteSummaryText(w io.Writer, s *types.FileSummary) error {
	var b strings.Builder
	for _, st := range s.Streams {
		fmt.Fprintf(&b, "Stream %d\n", st.Stream)
		for _, k := range types.Kinds() {
			if k == types.KindExecuted {
				fmt.Fprintf(&b, " %s: %d messages: %d executed shares\n", k, st.Count(k), st.ExecutedShares)
				continue
			}
			fmt.Fprintf(&b, " %s: %d messages\n", k, st.Count(k))
		}
		if st.Unknown > 0 {
			fmt.Fprintf(&b, " Unknown: %d messages\n", st.Unknown)
		}
		b.WriteString("\n")
	}
	if s.Aborted() {
		fmt.Fprintf(&b, "Aborted: %s\n", s.Reason)
	}
	if s.TrailingBytes > 0 {
		fmt.Fprintf(&b, "Warning: %d trailing bytes of an incomplete record\n", s.TrailingBytes)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// reportHeader is the key/value block shown above the stream table.
type reportHeader struct {
	Path          string `json:"path"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
	BytesRead     int64  `json:"bytes_read"`
	Chunks        int64  `json:"chunks"`
	TrailingBytes int64  `json:"trailing_bytes"`
	DurationMs    int64  `json:"duration_ms"`
}

func (r *Renderer) renderReportTable(rep Report) error {
	s := rep.Summary
	status := string(s.Status)
	if !r.noColor {
		status = tui.StatusStyle(status).Render(status)
	}
	if err := r.renderStructTable(reportHeader{
		Path:          s.Path,
		Status:        status,
		Reason:        s.Reason,
		BytesRead:     s.BytesRead,
		Chunks:        s.Chunks,
		TrailingBytes: s.TrailingBytes,
		DurationMs:    s.DurationMs,
	}); err != nil {
		return err
	}

	fmt.Fprintln(r.out)
	if err := r.renderSliceTable(reflect.ValueOf(s.Streams)); err != nil {
		return err
	}

	if rep.Metrics != nil {
		fmt.Fprintln(r.out)
		return r.renderStructTable(rep.Metrics)
	}
	return nil
}

func (r *Renderer) renderJSON(data any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *Renderer) renderYAML(data any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	return enc.Encode(data)
}

func (r *Renderer) renderTable(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice {
		return r.renderSliceTable(v)
	}
	return r.renderStructTable(data)
}

func (r *Renderer) renderSliceTable(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Fprintln(r.out, "(no results)")
		return nil
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, strings.Join(r.getHeaders(v.Index(0)), "\t"))
	for i := 0; i < v.Len(); i++ {
		fmt.Fprintln(w, strings.Join(r.getRowValues(v.Index(i)), "\t"))
	}
	return nil
}

func (r *Renderer) renderStructTable(data any) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			fmt.Fprintf(w, "%s:\t%s\n", r.getFieldName(t.Field(i)), r.formatValue(v.Field(i)))
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			fmt.Fprintf(w, "%v:\t%s\n", iter.Key().Interface(), r.formatValue(iter.Value()))
		}
	default:
		fmt.Fprintf(w, "%v\n", data)
	}
	return nil
}

func (r *Renderer) getHeaders(v reflect.Value) []string {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []string{"value"}
	}
	t := v.Type()
	headers := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		headers = append(headers, r.getFieldName(t.Field(i)))
	}
	return headers
}

func (r *Renderer) getRowValues(v reflect.Value) []string {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []string{r.formatValue(v)}
	}
	values := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		values = append(values, r.formatValue(v.Field(i)))
	}
	return values
}

func (r *Renderer) getFieldName(f reflect.StructField) string {
	// Prefer json tag name
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func (r *Renderer) formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	case reflect.Struct:
		return "{...}"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// isTTY returns true if the file is a character device.
func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
