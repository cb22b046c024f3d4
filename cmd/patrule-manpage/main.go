package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/patrule/cmd/patrule"
	"github.com/arthur-debert/patrule/internal/version"
)

func main() {
	rootCmd := patrule.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PATRULE",
		Section: "1",
		Source:  "patrule " + version.Version,
		Manual:  "patrule manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
