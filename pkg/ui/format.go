package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is the value of the --format flag
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
)

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat accepts a --format value, case-insensitively
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q, want auto, term or text", s)
}

// DetectFormat resolves FormatAuto for output. Styling needs a terminal
// that reports colour support and no NO_COLOR in the environment.
func DetectFormat(output *os.File) Format {
	styled := os.Getenv("NO_COLOR") == "" &&
		IsTerminal(output) &&
		termenv.NewOutput(output).EnvColorProfile() != termenv.Ascii
	if styled {
		return FormatTerminal
	}
	return FormatText
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
