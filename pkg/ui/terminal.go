package ui

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// terminalRenderer styles the plain text form of a result line by line.
type terminalRenderer struct {
	output io.Writer
	theme  Theme
}

func newTerminalRenderer(w io.Writer, theme Theme) *terminalRenderer {
	return &terminalRenderer{output: w, theme: theme}
}

func (r *terminalRenderer) RenderResult(result interface{}) error {
	var buf bytes.Buffer
	if tw, ok := result.(TextWriter); ok {
		if err := tw.WriteText(&buf); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(&buf, result)
	}

	scanner := bufio.NewScanner(&buf)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(r.output, r.theme.Highlight(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.theme.Style(StyleError).Render("Error: "+err.Error()))
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.theme.Style(StyleInfo).Render(msg))
	return err
}

// Highlight styles one line of rule database output.
func (t Theme) Highlight(line string) string {
	switch {
	case line == "":
		return line
	case strings.HasPrefix(line, "#"):
		return t.Style(StyleComment).Render(line)
	case strings.HasPrefix(line, "\t"):
		return "\t" + t.Style(StyleRecipe).Render(line[1:])
	}

	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return line
	}
	head, tail := line[:i], line[i:]
	return t.Style(StyleTarget).Render(head) + t.Style(StyleDeps).Render(tail)
}
