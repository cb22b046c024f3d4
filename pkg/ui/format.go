package ui

import (
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are written.
type Format int

const (
	FormatAuto     Format = iota // pick FormatTerminal or FormatText from the output
	FormatTerminal               // styled rule listing
	FormatText                   // the plain diagnostics dump
	FormatJSON
)

// formatNames maps every accepted spelling to its Format. String uses the
// spelling in canonical.
var formatNames = map[string]Format{
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

var canonical = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

func (f Format) String() string {
	if name, ok := canonical[f]; ok {
		return name
	}
	return "unknown"
}

// FormatNames lists every accepted --format value, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(formatNames))
	for name := range formatNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseFormat accepts any spelling in FormatNames, ignoring case. The
// empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatAuto, nil
	}
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (want one of %s)",
		s, strings.Join(FormatNames(), ", ")).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for output. Colour is used only on a
// terminal that can show it and when NO_COLOR is unset.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
