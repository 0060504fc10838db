// Command flacenc encodes WAV, Ogg Vorbis, and MP3 input to FLAC.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagBlockSize int
	flagVerbose   bool
	flagQuiet     bool
)

// errUsage marks a command-line usage error (wrong argument count),
// mapped to exit code 1 per the CLI's documented
// contract. Cobra's own arg-count validation errors are not sentinel-
// wrapped, so subcommands validate arg count themselves and wrap this.
var errUsage = errors.New("usage error")

func main() {
	root := &cobra.Command{
		Use:   "flacenc",
		Short: "Encode audio to FLAC",
	}
	root.PersistentFlags().IntVar(&flagBlockSize, "block-size", 4096, "samples per channel per frame")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print the input format before encoding")
	root.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress all non-error output")

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newInfoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flacenc:", err)
		os.Exit(exitCodeFor(err))
	}
}

func logf(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func verbosef(format string, args ...interface{}) {
	if !flagVerbose || flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
