package flacenc

import (
	"crypto/md5"
	"encoding/binary"
	"io"

	"github.com/formeo/flacenc/internal/bitio"
)

// vendorString must appear verbatim in the VORBIS_COMMENT block's
// vendor field.
const vendorString = "toastori FLAC 0.0.0"

// headerSize is the placeholder size (in bytes) reserved at the start
// of the stream for the fLaC magic and STREAMINFO block, patched in
// pass 2.
const headerSize = 42

// BlockSource delivers planar, sign-extended sample blocks to the
// stream encoder. Implementations read from a decoded audio source
// (pkg/source) and report raw little-endian PCM bytes alongside each
// block so the encoder can fold them into the STREAMINFO MD5 without
// re-deriving byte order from the sign-extended samples.
type BlockSource interface {
	Channels() int
	BitDepth() uint8
	SampleRate() int
	TotalSamples() uint64 // per channel

	// NextBlock returns the next block of up to maxBlockSize samples
	// per channel as planar int64 slices, plus the exact raw
	// little-endian PCM bytes those samples were derived from (for the
	// STREAMINFO MD5). io.EOF with a non-empty block is the final
	// partial block; io.EOF with an empty block signals completion.
	NextBlock(maxBlockSize int) (channels [][]int64, raw []byte, err error)
}

// EncodeStream reads blocks from src and writes a complete FLAC stream
// to sink, which must support Seek (the stream encoder patches
// STREAMINFO in place after all frames are written).
func EncodeStream(sink io.WriteSeeker, src BlockSource, blockSize int) error {
	si := StreamInfo{
		SampleRate: uint32(src.SampleRate()),
		Channels:   uint8(src.Channels()),
		BitDepth:   src.BitDepth(),
	}
	if err := si.Validate(); err != nil {
		return err
	}
	switch si.BitDepth {
	case 8, 16, 24, 32:
	default:
		return ErrUnsupportedFormat
	}
	if blockSize <= 0 || blockSize > MaxBlockSize {
		blockSize = 4096
	}
	si.MinBlockSize = uint16(blockSize)
	si.MaxBlockSize = uint16(blockSize)

	placeholder := make([]byte, headerSize)
	if _, err := sink.Write(placeholder); err != nil {
		return ErrWriteFailed
	}
	if err := writeVorbisCommentBlock(sink); err != nil {
		return err
	}

	hasher := md5.New()
	w := bitio.NewWriter(sink)

	var frameNumber uint64
	for {
		channels, raw, err := src.NextBlock(blockSize)
		if len(channels) == 0 || len(channels[0]) == 0 {
			if err != nil && err != io.EOF {
				return ErrIncompleteStream
			}
			break
		}
		n := len(channels[0])
		for _, ch := range channels {
			if len(ch) != n {
				return ErrIncompleteStream
			}
		}
		hasher.Write(raw)

		if n < int(si.MinBlockSize) {
			si.MinBlockSize = uint16(n)
		}
		if n > int(si.MaxBlockSize) {
			si.MaxBlockSize = uint16(n)
		}

		nBytes, encErr := encodeFrame(w, channels, int(si.SampleRate), si.BitDepth, frameNumber)
		if encErr != nil {
			return ErrWriteFailed
		}
		si.UpdateFrameSize(uint32(nBytes))
		si.InterchannelSamples += uint64(n)
		frameNumber++

		if err == io.EOF {
			break
		}
		if err != nil {
			return ErrIncompleteStream
		}
	}

	copy(si.MD5[:], hasher.Sum(nil))

	if err := si.Validate(); err != nil {
		return err
	}

	if _, err := sink.Seek(0, io.SeekStart); err != nil {
		return ErrWriteFailed
	}
	return writeStreamInfoHeader(sink, &si)
}

// writeStreamInfoHeader writes the 4-byte fLaC magic, the STREAMINFO
// block header (is_last_block=false since a VORBIS_COMMENT block
// follows), and the 34-byte STREAMINFO payload.
func writeStreamInfoHeader(sink io.Writer, si *StreamInfo) error {
	if _, err := sink.Write([]byte("fLaC")); err != nil {
		return ErrWriteFailed
	}
	header := blockHeaderByte(false, BlockTypeStreamInfo)
	if _, err := sink.Write([]byte{header}); err != nil {
		return ErrWriteFailed
	}
	if err := writeUint24(sink, 34); err != nil {
		return err
	}
	payload := si.Bytes()
	if _, err := sink.Write(payload[:]); err != nil {
		return ErrWriteFailed
	}
	return nil
}

// writeVorbisCommentBlock writes a VORBIS_COMMENT metadata block
// carrying only the vendor string and zero user comments, marked as the
// stream's last metadata block.
func writeVorbisCommentBlock(sink io.Writer) error {
	var body []byte
	body = appendUint32LE(body, uint32(len(vendorString)))
	body = append(body, vendorString...)
	body = appendUint32LE(body, 0) // user comment list length

	header := blockHeaderByte(true, BlockTypeVorbisComment)
	if _, err := sink.Write([]byte{header}); err != nil {
		return ErrWriteFailed
	}
	if err := writeUint24(sink, len(body)); err != nil {
		return err
	}
	if _, err := sink.Write(body); err != nil {
		return ErrWriteFailed
	}
	return nil
}

func blockHeaderByte(isLast bool, t BlockType) byte {
	b := byte(t) & 0x7F
	if isLast {
		b |= 0x80
	}
	return b
}

func writeUint24(sink io.Writer, v int) error {
	b := []byte{byte(v >> 16), byte(v >> 8), byte(v)}
	if _, err := sink.Write(b); err != nil {
		return ErrWriteFailed
	}
	return nil
}

func appendUint32LE(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}
