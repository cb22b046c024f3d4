package ui

import (
	"fmt"
	"io"
)

type textRenderer struct {
	output io.Writer
}

func newTextRenderer(w io.Writer) *textRenderer {
	return &textRenderer{output: w}
}

func (r *textRenderer) RenderResult(result interface{}) error {
	if tw, ok := result.(TextWriter); ok {
		return tw.WriteText(r.output)
	}
	_, err := fmt.Fprintln(r.output, result)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
