package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formeo/flacenc/pkg/flacenc"
	"github.com/formeo/flacenc/pkg/source"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode INPUT OUTPUT.flac",
		Short: "Encode an audio file to FLAC",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: expected INPUT OUTPUT.flac", errUsage)
			}
			return runEncode(args[0], args[1])
		},
		SilenceUsage: true,
	}
	return cmd
}

func runEncode(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	src, err := openSource(inputPath, in)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	verbosef("encoding %s -> %s (%d ch, %d-bit, %d Hz)",
		inputPath, outputPath, src.Channels(), src.BitDepth(), src.SampleRate())

	if err := flacenc.EncodeStream(out, src, flagBlockSize); err != nil {
		os.Remove(outputPath)
		return err
	}
	return nil
}

// openSource picks a decoder by the input file's extension. WAV is a
// seekable file reader; OGG and MP3 decode from a plain io.Reader.
func openSource(path string, f *os.File) (flacenc.BlockSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return source.NewWAV(f)
	case ".ogg":
		return source.NewOGG(f)
	case ".mp3":
		return source.NewMP3(f)
	default:
		return nil, fmt.Errorf("%w: unrecognized extension %q", flacenc.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// exitCodeFor maps a returned error to the CLI's documented exit codes:
// 0 success, 1 usage, 2 unsupported format, 3 incomplete stream, other
// nonzero for I/O errors.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 1
	case errors.Is(err, flacenc.ErrUnsupportedFormat), errors.Is(err, source.ErrUnsupportedWAV):
		return 2
	case errors.Is(err, flacenc.ErrIncompleteStream):
		return 3
	default:
		return 4
	}
}
