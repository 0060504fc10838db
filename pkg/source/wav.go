// Package source adapts decoded audio (WAV, OGG Vorbis, MP3) into the
// planar sign-extended sample blocks the FLAC encoder core consumes.
// Each reader exposes the same shape: Channels, BitDepth, SampleRate,
// TotalSamples, and NextBlock, so cmd/flacenc can use them
// interchangeably as a flacenc.BlockSource.
package source

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupportedWAV is returned when the input WAV's format (bit depth,
// channel count) falls outside what the encoder core accepts.
var ErrUnsupportedWAV = errors.New("source: unsupported WAV format")

// WAV decodes a PCM WAV file into planar sample blocks at its native
// bit depth.
type WAV struct {
	dec      *wav.Decoder
	channels int
	bitDepth uint8
	rate     int
	total    uint64

	buf *audio.IntBuffer
	eof bool
}

// NewWAV opens a WAV stream for reading. r must be positioned at the
// start of the RIFF header.
func NewWAV(r io.ReadSeeker) (*WAV, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrUnsupportedWAV
	}
	dec.ReadInfo()

	bitDepth := dec.BitDepth
	channels := int(dec.NumChans)
	if bitDepth != 8 && bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return nil, ErrUnsupportedWAV
	}
	if channels < 1 || channels > 8 {
		return nil, ErrUnsupportedWAV
	}

	var total uint64
	if dec.PCMSize > 0 && channels > 0 {
		bytesPerSample := int(bitDepth) / 8
		total = uint64(int(dec.PCMSize) / (bytesPerSample * channels))
	}

	return &WAV{
		dec:      dec,
		channels: channels,
		bitDepth: uint8(bitDepth),
		rate:     int(dec.SampleRate),
		total:    total,
	}, nil
}

func (w *WAV) Channels() int      { return w.channels }
func (w *WAV) BitDepth() uint8    { return w.bitDepth }
func (w *WAV) SampleRate() int    { return w.rate }
func (w *WAV) TotalSamples() uint64 { return w.total }

// NextBlock reads up to maxBlockSize samples per channel, returning
// planar sign-extended int64 samples and the exact little-endian PCM
// bytes they came from (for the STREAMINFO MD5).
func (w *WAV) NextBlock(maxBlockSize int) ([][]int64, []byte, error) {
	if w.eof {
		return nil, nil, io.EOF
	}

	frameCount := maxBlockSize * w.channels
	if w.buf == nil || len(w.buf.Data) != frameCount {
		w.buf = &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: w.channels, SampleRate: w.rate},
			Data:           make([]int, frameCount),
			SourceBitDepth: int(w.bitDepth),
		}
	}

	n, err := w.dec.PCMBuffer(w.buf)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if n == 0 {
		w.eof = true
		return nil, nil, io.EOF
	}

	samplesPerChan := n / w.channels
	channels := make([][]int64, w.channels)
	for c := range channels {
		channels[c] = make([]int64, samplesPerChan)
	}

	bytesPerSample := int(w.bitDepth) / 8
	raw := make([]byte, n*bytesPerSample)

	for i := 0; i < samplesPerChan; i++ {
		for c := 0; c < w.channels; c++ {
			v := int32(w.buf.Data[i*w.channels+c])
			channels[c][i] = int64(v)

			off := (i*w.channels + c) * bytesPerSample
			putLittleEndianSample(raw[off:off+bytesPerSample], v, w.bitDepth)
		}
	}

	if err == io.EOF || n < frameCount {
		w.eof = true
		return channels, raw, io.EOF
	}
	return channels, raw, nil
}

// putLittleEndianSample writes v's low bitDepth bits to b in little-endian
// byte order, matching the original WAV sample encoding.
func putLittleEndianSample(b []byte, v int32, bitDepth uint8) {
	switch bitDepth {
	case 8:
		b[0] = byte(v)
	case 16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 24:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	case 32:
		binary.LittleEndian.PutUint32(b, uint32(v))
	}
}
