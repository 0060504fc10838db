package flacenc

import "github.com/formeo/flacenc/internal/bitio"

// encodeFrame writes one frame of planar samples (one []int64 per
// channel, all the same length) to w and returns the number of bytes
// written. frameNumber is the fixed-blocking-strategy frame index.
func encodeFrame(w *bitio.Writer, channels [][]int64, sampleRate int, bitDepth uint8, frameNumber uint64) (int, error) {
	w.ResetFrame()

	blockSize := len(channels[0])

	var mode StereoMode
	var subframes []Subframe
	var channelAssignment uint8

	if len(channels) == 2 {
		mode = chooseStereoMode(channels[0], channels[1], blockSize)
		channelAssignment = mode.ChannelAssignment(1)
		subframes = stereoSubframes(channels[0], channels[1], bitDepth, mode)
	} else {
		channelAssignment = uint8(len(channels) - 1)
		subframes = make([]Subframe, len(channels))
		for i, ch := range channels {
			subframes[i] = chooseSubframe(ch, bitDepth)
		}
	}

	hp := frameHeaderParams{
		blockSize:         blockSize,
		sampleRate:        sampleRate,
		channelAssignment: channelAssignment,
		bitDepth:          bitDepth,
		frameNumber:       frameNumber,
	}
	if err := writeFrameHeader(w, hp); err != nil {
		return 0, err
	}

	for _, sf := range subframes {
		if err := writeSubframe(w, sf); err != nil {
			return 0, err
		}
	}

	if err := w.FlushBytes(); err != nil {
		return 0, err
	}
	if err := w.WriteCRC16(); err != nil {
		return 0, err
	}

	return w.BytesWritten(), nil
}

// stereoSubframes builds the two subframes for a chosen stereo mode, in
// the channel order the FLAC spec requires for that mode: LR = left,
// right; LS = left,side; SR = side,right; MS = mid,side.
func stereoSubframes(left, right []int64, bitDepth uint8, mode StereoMode) []Subframe {
	switch mode {
	case StereoLeftRight:
		return []Subframe{
			chooseSubframe(left, bitDepth),
			chooseSubframe(right, bitDepth),
		}
	case StereoLeftSide:
		_, side := midSideBuffers(left, right)
		return []Subframe{
			chooseSubframe(left, bitDepth),
			chooseSubframe(side, bitDepth+1),
		}
	case StereoSideRight:
		_, side := midSideBuffers(left, right)
		return []Subframe{
			chooseSubframe(side, bitDepth+1),
			chooseSubframe(right, bitDepth),
		}
	case StereoMidSide:
		mid, side := midSideBuffers(left, right)
		return []Subframe{
			chooseSubframe(mid, bitDepth),
			chooseSubframe(side, bitDepth+1),
		}
	default:
		panic("flacenc: unknown stereo mode")
	}
}
