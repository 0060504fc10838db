package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info INPUT",
		Short: "Print the channel count, bit depth, and sample rate of an input file",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected INPUT", errUsage)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			src, err := openSource(args[0], f)
			if err != nil {
				return err
			}
			fmt.Printf("channels:      %d\n", src.Channels())
			fmt.Printf("bit depth:     %d\n", src.BitDepth())
			fmt.Printf("sample rate:   %d Hz\n", src.SampleRate())
			fmt.Printf("total samples: %d\n", src.TotalSamples())
			return nil
		},
		SilenceUsage: true,
	}
}
