// Package ui renders command results as styled terminal text, plain text
// or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/patrule/pkg/errors"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// TextWriter is implemented by results that have a plain text form.
// Results without one are printed with their default formatting.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output:
// a terminal gets styled output, anything else plain text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newTerminalRenderer(output, DefaultTheme()), nil
	case FormatText:
		return newTextRenderer(output), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
