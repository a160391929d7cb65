package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/macstage/cmd/macstage"
	"github.com/arthur-debert/macstage/pkg/shell"
)

// Without an argument the completion targets the shell macstage was started from.
func main() {
	var target shell.Shell
	if len(os.Args) > 1 {
		target = shell.Parse(os.Args[1])
	} else {
		target = shell.Detect()
	}

	rootCmd := macstage.NewRootCmd()

	var err error
	switch target {
	case shell.Bash:
		err = rootCmd.GenBashCompletionV2(os.Stdout, true)
	case shell.Zsh:
		err = rootCmd.GenZshCompletion(os.Stdout)
	case shell.Fish:
		err = rootCmd.GenFishCompletion(os.Stdout, true)
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [bash|zsh|fish]\n", os.Args[0])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", target, err)
		os.Exit(1)
	}
}
