package macstage

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// unknownFlags lists the flags in args that target does not define. Scanning
// stops at "--".
func unknownFlags(target *cobra.Command, args []string) []string {
	lookup := func(name string) *pflag.Flag {
		if f := target.Flags().Lookup(name); f != nil {
			return f
		}
		return target.InheritedFlags().Lookup(name)
	}
	shorthand := func(c string) *pflag.Flag {
		if f := target.Flags().ShorthandLookup(c); f != nil {
			return f
		}
		return target.InheritedFlags().ShorthandLookup(c)
	}

	var unknown []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return unknown
		case strings.HasPrefix(arg, "--"):
			name := strings.SplitN(arg[2:], "=", 2)[0]
			if name == "help" {
				continue
			}
			f := lookup(name)
			if f == nil {
				unknown = append(unknown, "--"+name)
				continue
			}
			if takesValue(f) && !strings.Contains(arg, "=") {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			chars := arg[1:]
			for j := 0; j < len(chars); j++ {
				c := string(chars[j])
				if c == "h" {
					continue
				}
				f := shorthand(c)
				if f == nil {
					unknown = append(unknown, "-"+c)
					continue
				}
				if takesValue(f) {
					// the rest of the word, or the next argument, is the value
					if j == len(chars)-1 {
						i++
					}
					break
				}
			}
		}
	}
	return unknown
}

// strayArgs returns the positional arguments given before "--". Everything
// after "--" belongs to nobody and is dropped silently.
func strayArgs(cmd *cobra.Command, args []string) []string {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 && dash <= len(args) {
		return args[:dash]
	}
	return args
}

func takesValue(f *pflag.Flag) bool {
	return f.NoOptDefVal == ""
}
