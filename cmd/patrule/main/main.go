package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/patrule/cmd/patrule"
	"github.com/arthur-debert/patrule/pkg/ui"
)

func main() {
	rootCmd := patrule.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := ui.DefaultTheme().Style(ui.StyleError)
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
