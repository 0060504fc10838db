package source

import (
	"io"
	"math"

	"github.com/jfreymuth/oggvorbis"
)

// OGG decodes an Ogg Vorbis stream into 16-bit planar sample blocks.
// Vorbis is lossy, so round-tripping it through this FLAC encoder only
// preserves the decoded PCM, not the original pre-Vorbis audio.
type OGG struct {
	r        *oggvorbis.Reader
	channels int
	rate     int
	total    uint64
	eof      bool
}

// NewOGG opens an Ogg Vorbis stream for reading.
func NewOGG(r io.Reader) (*OGG, error) {
	rd, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &OGG{
		r:        rd,
		channels: rd.Channels(),
		rate:     rd.SampleRate(),
		total:    uint64(rd.Length()),
	}, nil
}

func (o *OGG) Channels() int      { return o.channels }
func (o *OGG) BitDepth() uint8    { return 16 }
func (o *OGG) SampleRate() int    { return o.rate }
func (o *OGG) TotalSamples() uint64 { return o.total }

func (o *OGG) NextBlock(maxBlockSize int) ([][]int64, []byte, error) {
	if o.eof {
		return nil, nil, io.EOF
	}

	buf := make([]float32, maxBlockSize*o.channels)
	n, err := o.r.Read(buf)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if n == 0 {
		o.eof = true
		return nil, nil, io.EOF
	}

	samplesPerChan := n / o.channels
	channels := make([][]int64, o.channels)
	for c := range channels {
		channels[c] = make([]int64, samplesPerChan)
	}
	raw := make([]byte, n*2)

	for i := 0; i < samplesPerChan; i++ {
		for c := 0; c < o.channels; c++ {
			f := buf[i*o.channels+c]
			v := floatToInt16(f)
			channels[c][i] = int64(v)

			off := (i*o.channels + c) * 2
			raw[off] = byte(v)
			raw[off+1] = byte(v >> 8)
		}
	}

	if err == io.EOF || n < len(buf) {
		o.eof = true
		return channels, raw, io.EOF
	}
	return channels, raw, nil
}

func floatToInt16(f float32) int16 {
	v := math.Round(float64(f) * 32767)
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return int16(v)
}
