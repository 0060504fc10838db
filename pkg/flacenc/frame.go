package flacenc

import "github.com/formeo/flacenc/internal/bitio"

// blockSizeCode returns the 4-bit block-size code and, when the code is
// one of the two "uncommon" escapes, the trailer width (8 or 16) holding
// blockSize-1.
func blockSizeCode(blockSize int) (code uint8, trailerBits uint8) {
	switch blockSize {
	case 192:
		return 0b0001, 0
	case 576, 1152, 2304, 4608:
		// 144 * 2^k for k in 2..=5 -> codes 2..5
		for k, v := 2, 576; k <= 5; k, v = k+1, v*2 {
			if blockSize == v {
				return uint8(k), 0
			}
		}
	case 256, 512, 1024, 2048, 4096, 8192, 16384, 32768:
		for k, v := 8, 256; k <= 15; k, v = k+1, v*2 {
			if blockSize == v {
				return uint8(k), 0
			}
		}
	}
	if blockSize <= 256 {
		return 0b0110, 8
	}
	return 0b0111, 16
}

// sampleRateCode returns the 4-bit sample-rate code and, for the escape
// codes 12/13/14, the trailer width and scale (Hz per unit) for the
// following trailer value.
func sampleRateCode(rate int) (code uint8, trailerBits uint8, unitHz int) {
	switch rate {
	case 88200:
		return 1, 0, 0
	case 176400:
		return 2, 0, 0
	case 192000:
		return 3, 0, 0
	case 8000:
		return 4, 0, 0
	case 16000:
		return 5, 0, 0
	case 22050:
		return 6, 0, 0
	case 24000:
		return 7, 0, 0
	case 32000:
		return 8, 0, 0
	case 44100:
		return 9, 0, 0
	case 48000:
		return 10, 0, 0
	case 96000:
		return 11, 0, 0
	}
	if rate <= 255 {
		return 12, 8, 1
	}
	if rate%10 == 0 && rate/10 <= 65535 {
		return 14, 16, 10
	}
	if rate <= 65535 {
		return 13, 16, 1
	}
	// Out of range for any code; caller is expected to have validated
	// sample_rate < 2^20 already and fall back to "see STREAMINFO".
	return 0, 0, 0
}

// bitDepthCode returns the 4-bit bit-depth field: the real FLAC 3-bit
// sample-size code shifted left by one, with the trailing reserved bit
// (always 0) already folded in — callers must not write a further
// reserved bit after this field. Depths 12 and 20 have no code in this
// encoder (bit_depth is constrained to {8,16,24,32} by UnsupportedFormat
// at stream setup).
func bitDepthCode(bitDepth uint8) uint8 {
	switch bitDepth {
	case 8:
		return 2
	case 16:
		return 8
	case 24:
		return 12
	case 32:
		return 14
	default:
		return 0
	}
}

// writeUTF8FrameNumber writes n as the FLAC variable-length UTF-8-style
// encoding used for frame and sample numbers (1-7 bytes).
func writeUTF8FrameNumber(w *bitio.Writer, n uint64) error {
	switch {
	case n < 0x80:
		return w.WriteBits(n, 8)
	case n < 0x800:
		if err := w.WriteBits(0xC0|(n>>6), 8); err != nil {
			return err
		}
		return w.WriteBits(0x80|(n&0x3F), 8)
	case n < 0x10000:
		if err := w.WriteBits(0xE0|(n>>12), 8); err != nil {
			return err
		}
		if err := w.WriteBits(0x80|((n>>6)&0x3F), 8); err != nil {
			return err
		}
		return w.WriteBits(0x80|(n&0x3F), 8)
	case n < 0x200000:
		if err := w.WriteBits(0xF0|(n>>18), 8); err != nil {
			return err
		}
		if err := w.WriteBits(0x80|((n>>12)&0x3F), 8); err != nil {
			return err
		}
		if err := w.WriteBits(0x80|((n>>6)&0x3F), 8); err != nil {
			return err
		}
		return w.WriteBits(0x80|(n&0x3F), 8)
	case n < 0x4000000:
		if err := w.WriteBits(0xF8|(n>>24), 8); err != nil {
			return err
		}
		if err := w.WriteBits(0x80|((n>>18)&0x3F), 8); err != nil {
			return err
		}
		if err := w.WriteBits(0x80|((n>>12)&0x3F), 8); err != nil {
			return err
		}
		if err := w.WriteBits(0x80|((n>>6)&0x3F), 8); err != nil {
			return err
		}
		return w.WriteBits(0x80|(n&0x3F), 8)
	case n < 0x80000000:
		if err := w.WriteBits(0xFC|(n>>30), 8); err != nil {
			return err
		}
		for shift := 24; shift >= 0; shift -= 6 {
			if err := w.WriteBits(0x80|((n>>uint(shift))&0x3F), 8); err != nil {
				return err
			}
		}
		return nil
	default:
		if err := w.WriteBits(0xFE, 8); err != nil {
			return err
		}
		for shift := 30; shift >= 0; shift -= 6 {
			if err := w.WriteBits(0x80|((n>>uint(shift))&0x3F), 8); err != nil {
				return err
			}
		}
		return nil
	}
}

// frameHeaderParams bundles the inputs to writeFrameHeader.
type frameHeaderParams struct {
	blockSize          int
	sampleRate         int
	channelAssignment  uint8
	bitDepth           uint8
	frameNumber        uint64
}

// writeFrameHeader emits the fixed-blocking-strategy frame header
// (sync + reserved + blocking-strategy, block-size code, sample-rate
// code, channel-assignment, bit-depth code, frame number, any uncommon
// trailers) and its CRC-8 footer. Caller must have called w.ResetFrame()
// first.
func writeFrameHeader(w *bitio.Writer, p frameHeaderParams) error {
	if err := w.WriteBits(0xFFF8, 16); err != nil {
		return err
	}

	bsCode, bsTrailerBits := blockSizeCode(p.blockSize)
	if err := w.WriteBits(uint64(bsCode), 4); err != nil {
		return err
	}

	srCode, srTrailerBits, srUnit := sampleRateCode(p.sampleRate)
	if err := w.WriteBits(uint64(srCode), 4); err != nil {
		return err
	}

	if err := w.WriteBits(uint64(p.channelAssignment), 4); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(bitDepthCode(p.bitDepth)), 4); err != nil {
		return err
	}

	if err := writeUTF8FrameNumber(w, p.frameNumber); err != nil {
		return err
	}

	if bsTrailerBits > 0 {
		if err := w.WriteBits(uint64(p.blockSize-1), bsTrailerBits); err != nil {
			return err
		}
	}
	if srTrailerBits > 0 {
		if err := w.WriteBits(uint64(p.sampleRate/srUnit), srTrailerBits); err != nil {
			return err
		}
	}

	return w.WriteCRC8()
}

// writeSubframe emits one channel's subframe: the 1-bit zero padding,
// 6-bit coding-type field, 1-bit wasted-bits flag (always 0 — wasted-bit
// detection is unimplemented), and the chosen representation's body.
func writeSubframe(w *bitio.Writer, sf Subframe) error {
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}

	switch sf.Kind {
	case SubframeConstant:
		if err := w.WriteBits(0x00, 6); err != nil {
			return err
		}
		if err := w.WriteBits(0, 1); err != nil {
			return err
		}
		return w.WriteBits(uint64(sf.ConstantValue)&mask64(sf.SampleSize), sf.SampleSize)

	case SubframeVerbatim:
		if err := w.WriteBits(0x01, 6); err != nil {
			return err
		}
		if err := w.WriteBits(0, 1); err != nil {
			return err
		}
		for _, s := range sf.Samples {
			if err := w.WriteBits(uint64(s)&mask64(sf.SampleSize), sf.SampleSize); err != nil {
				return err
			}
		}
		return nil

	case SubframeFixed:
		if err := w.WriteBits(uint64(0x08|sf.Order), 6); err != nil {
			return err
		}
		if err := w.WriteBits(0, 1); err != nil {
			return err
		}
		for i := 0; i < int(sf.Order); i++ {
			if err := w.WriteBits(uint64(sf.Residuals[i])&mask64(sf.SampleSize), sf.SampleSize); err != nil {
				return err
			}
		}
		return writeRicePartitions(w, sf.Residuals, int(sf.Order), sf.Rice)

	default:
		panic("flacenc: unknown subframe kind")
	}
}

func mask64(n uint8) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}

// writeRicePartitions emits the Rice partition header (method, partition
// order, per-partition parameters) and the Rice-coded residuals.
func writeRicePartitions(w *bitio.Writer, residuals []int64, order int, rc RiceConfig) error {
	if err := w.WriteBits(uint64(rc.Method), 2); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(rc.PartitionOrder), 4); err != nil {
		return err
	}

	paramBits := uint8(4)
	if rc.Method == RiceMethodFive {
		paramBits = 5
	}

	n := len(residuals)
	parts := 1 << rc.PartitionOrder
	partLen := n / parts

	for p := 0; p < parts; p++ {
		k := rc.Params[p]
		if k == RiceEscapeParam {
			panic("flacenc: escaped Rice partitions are unreachable in this encoder")
		}
		if err := w.WriteBits(uint64(k), paramBits); err != nil {
			return err
		}

		start := p * partLen
		end := start + partLen
		if p == 0 {
			start += order
		}
		for i := start; i < end; i++ {
			if err := writeRiceResidual(w, residuals[i], k); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRiceResidual(w *bitio.Writer, v int64, k uint8) error {
	u := zigzag(v)
	q := u >> k
	if err := w.WriteUnary(q); err != nil {
		return err
	}
	if k == 0 {
		return nil
	}
	rem := u & (uint64(1)<<k - 1)
	return w.WriteBits(rem, k)
}
