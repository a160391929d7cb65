package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Kind classifies a reported line
type Kind int

const (
	KindInfo Kind = iota
	KindDone
	KindSkipped
	KindWarning
	KindFailed
)

var kindStyles = map[Kind]struct {
	symbol string
	style  string
}{
	KindInfo:    {"•", "Muted"},
	KindDone:    {"✓", "Done"},
	KindSkipped: {"-", "Skipped"},
	KindWarning: {"!", "Warning"},
	KindFailed:  {"✗", "Failed"},
}

// Reporter writes progress lines to out and warnings to errOut
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	format Format
	theme  *Theme
}

// NewReporter creates a reporter. FormatAuto inspects out.
func NewReporter(out, errOut io.Writer, format Format) *Reporter {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	renderer := lipgloss.NewRenderer(out)
	if format == FormatText {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		out:    out,
		errOut: errOut,
		format: format,
		theme:  DefaultTheme(renderer),
	}
}

// Format is the resolved output format
func (r *Reporter) Format() Format {
	return r.format
}

// Header prints a section title
func (r *Reporter) Header(title string) {
	_, _ = fmt.Fprintln(r.out, r.theme.Render("Header", title))
}

// Step prints one step outcome
func (r *Reporter) Step(kind Kind, step, message string) {
	ks, ok := kindStyles[kind]
	if !ok {
		ks = kindStyles[KindInfo]
	}
	_, _ = fmt.Fprintf(r.out, "%s %s %s\n",
		r.theme.Render(ks.style, ks.symbol),
		r.theme.Render("Step", step),
		message)
}

// Notice prints an informational line
func (r *Reporter) Notice(message string) {
	_, _ = fmt.Fprintln(r.out, r.theme.Render("Muted", message))
}

// Path styles a filesystem path for inclusion in a message
func (r *Reporter) Path(p string) string {
	return r.theme.Render("Path", p)
}

// Warn prints a warning on the error stream
func (r *Reporter) Warn(message string) {
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.theme.Render("Warning", "warning:"), message)
}

// Error prints an error on the error stream
func (r *Reporter) Error(err error) {
	_, _ = fmt.Fprintf(r.errOut, "%s %v\n", r.theme.Render("Failed", "error:"), err)
}

// Markdown prints a Markdown document, rendered on terminals
func (r *Reporter) Markdown(content string) {
	if r.format == FormatTerminal {
		content = RenderMarkdown(content, 0)
	}
	_, _ = fmt.Fprint(r.out, content)
}
