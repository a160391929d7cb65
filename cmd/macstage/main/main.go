package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/macstage/cmd/macstage"
	"github.com/arthur-debert/macstage/pkg/ui"
)

func main() {
	rootCmd := macstage.NewRootCmd()
	if err := macstage.Execute(rootCmd, os.Args[1:]); err != nil {
		ui.NewReporter(os.Stdout, os.Stderr, ui.FormatAuto).Error(err)
		fmt.Fprintln(os.Stderr, "Run 'macstage --help' for usage.")
		os.Exit(1)
	}
}
