package source

import (
	"encoding/binary"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// MP3 decodes an MP3 stream into 16-bit planar sample blocks. MP3 is
// lossy, so round-tripping it through this FLAC encoder only preserves
// the decoded PCM, not the original pre-MP3 audio.
type MP3 struct {
	dec      *mp3.Decoder
	channels int
	rate     int
	total    uint64
	eof      bool
}

// NewMP3 opens an MP3 stream for reading. go-mp3 always decodes to
// 16-bit stereo PCM.
func NewMP3(r io.Reader) (*MP3, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	const channels = 2
	var total uint64
	if n := dec.Length(); n > 0 {
		total = uint64(n) / (2 * channels) // 2 bytes/sample * channels
	}
	return &MP3{
		dec:      dec,
		channels: channels,
		rate:     dec.SampleRate(),
		total:    total,
	}, nil
}

func (m *MP3) Channels() int      { return m.channels }
func (m *MP3) BitDepth() uint8    { return 16 }
func (m *MP3) SampleRate() int    { return m.rate }
func (m *MP3) TotalSamples() uint64 { return m.total }

func (m *MP3) NextBlock(maxBlockSize int) ([][]int64, []byte, error) {
	if m.eof {
		return nil, nil, io.EOF
	}

	raw := make([]byte, maxBlockSize*m.channels*2)
	n, err := io.ReadFull(m.dec, raw)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, nil, err
	}
	if n == 0 {
		m.eof = true
		return nil, nil, io.EOF
	}
	raw = raw[:n-n%(m.channels*2)]

	samplesPerChan := len(raw) / (2 * m.channels)
	channels := make([][]int64, m.channels)
	for c := range channels {
		channels[c] = make([]int64, samplesPerChan)
	}

	for i := 0; i < samplesPerChan; i++ {
		for c := 0; c < m.channels; c++ {
			off := (i*m.channels + c) * 2
			v := int16(binary.LittleEndian.Uint16(raw[off : off+2]))
			channels[c][i] = int64(v)
		}
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		m.eof = true
		return channels, raw, io.EOF
	}
	return channels, raw, nil
}
