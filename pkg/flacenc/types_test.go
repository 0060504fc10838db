package flacenc

import "testing"

func TestStreamInfoValidate(t *testing.T) {
	valid := StreamInfo{Channels: 2, BitDepth: 16, SampleRate: 44100}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid StreamInfo, got %v", err)
	}

	cases := []StreamInfo{
		{Channels: 0, BitDepth: 16, SampleRate: 44100},
		{Channels: 9, BitDepth: 16, SampleRate: 44100},
		{Channels: 2, BitDepth: 3, SampleRate: 44100},
		{Channels: 2, BitDepth: 33, SampleRate: 44100},
		{Channels: 2, BitDepth: 16, SampleRate: 1 << 20},
	}
	for i, si := range cases {
		if err := si.Validate(); err == nil {
			t.Errorf("case %d: expected error, got nil", i)
		}
	}
}

func TestStreamInfoBytesRoundTripFields(t *testing.T) {
	si := StreamInfo{
		MinBlockSize:        4096,
		MaxBlockSize:        4096,
		MinFrameSize:        100,
		MaxFrameSize:        200,
		SampleRate:          44100,
		Channels:            2,
		BitDepth:            16,
		InterchannelSamples: 123456,
	}
	copy(si.MD5[:], []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})

	b := si.Bytes()
	if len(b) != 34 {
		t.Fatalf("Bytes() len = %d, want 34", len(b))
	}

	gotMinBS := uint16(b[0])<<8 | uint16(b[1])
	if gotMinBS != si.MinBlockSize {
		t.Errorf("min_block_size = %d, want %d", gotMinBS, si.MinBlockSize)
	}
	gotMaxBS := uint16(b[2])<<8 | uint16(b[3])
	if gotMaxBS != si.MaxBlockSize {
		t.Errorf("max_block_size = %d, want %d", gotMaxBS, si.MaxBlockSize)
	}
	gotMinFS := uint32(b[4])<<16 | uint32(b[5])<<8 | uint32(b[6])
	if gotMinFS != si.MinFrameSize {
		t.Errorf("min_frame_size = %d, want %d", gotMinFS, si.MinFrameSize)
	}
	gotMaxFS := uint32(b[7])<<16 | uint32(b[8])<<8 | uint32(b[9])
	if gotMaxFS != si.MaxFrameSize {
		t.Errorf("max_frame_size = %d, want %d", gotMaxFS, si.MaxFrameSize)
	}

	packed := uint64(b[10])<<56 | uint64(b[11])<<48 | uint64(b[12])<<40 | uint64(b[13])<<32 |
		uint64(b[14])<<24 | uint64(b[15])<<16 | uint64(b[16])<<8 | uint64(b[17])
	gotRate := uint32(packed >> 44)
	gotChannels := uint8((packed>>41)&0x7) + 1
	gotDepth := uint8((packed>>36)&0x1F) + 1
	gotSamples := packed & 0xFFFFFFFFF

	if gotRate != si.SampleRate {
		t.Errorf("sample_rate = %d, want %d", gotRate, si.SampleRate)
	}
	if gotChannels != si.Channels {
		t.Errorf("channels = %d, want %d", gotChannels, si.Channels)
	}
	if gotDepth != si.BitDepth {
		t.Errorf("bit_depth = %d, want %d", gotDepth, si.BitDepth)
	}
	if gotSamples != si.InterchannelSamples {
		t.Errorf("interchannel_samples = %d, want %d", gotSamples, si.InterchannelSamples)
	}

	for i := 0; i < 16; i++ {
		if b[18+i] != si.MD5[i] {
			t.Errorf("md5[%d] = %x, want %x", i, b[18+i], si.MD5[i])
		}
	}
}

func TestStreamInfoUpdateFrameSize(t *testing.T) {
	var si StreamInfo
	si.UpdateFrameSize(500)
	si.UpdateFrameSize(100)
	si.UpdateFrameSize(900)
	if si.MinFrameSize != 100 {
		t.Errorf("MinFrameSize = %d, want 100", si.MinFrameSize)
	}
	if si.MaxFrameSize != 900 {
		t.Errorf("MaxFrameSize = %d, want 900", si.MaxFrameSize)
	}
}

func TestStereoModeChannelAssignment(t *testing.T) {
	cases := []struct {
		mode StereoMode
		want uint8
	}{
		{StereoLeftRight, 1},
		{StereoLeftSide, 8},
		{StereoSideRight, 9},
		{StereoMidSide, 10},
	}
	for _, c := range cases {
		if got := c.mode.ChannelAssignment(1); got != c.want {
			t.Errorf("ChannelAssignment(%v) = %d, want %d", c.mode, got, c.want)
		}
	}
}
