package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/macstage/cmd/macstage"
	"github.com/arthur-debert/macstage/internal/version"
)

func main() {
	rootCmd := macstage.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MACSTAGE",
		Section: "1",
		Source:  "macstage " + version.Version,
		Manual:  "macstage manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
