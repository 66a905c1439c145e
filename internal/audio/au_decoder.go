// Package audio decodes Sun/NeXT audio (.au) files into the interleaved
// 16-bit little-endian stereo PCM that Ebitengine's audio players consume.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Supported .au encodings.
const (
	EncodingMuLaw = 1 // 8-bit G.711 μ-law
	EncodingPCM16 = 3 // 16-bit linear PCM, big-endian
)

const (
	auMagic      = 0x2e736e64 // ".snd"
	auHeaderSize = 24
)

// ErrNotAU is returned when the input does not start with the .au magic number.
var ErrNotAU = errors.New("not a Sun/NeXT audio file")

// Stream is a fully decoded, seekable PCM stream.
type Stream struct {
	*bytes.Reader
	sampleRate int
}

// Length returns the size of the decoded stream in bytes.
func (s *Stream) Length() int64 {
	return s.Size()
}

// SampleRate returns the sample rate declared in the file header.
// The stream is not resampled.
func (s *Stream) SampleRate() int {
	return s.sampleRate
}

type header struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// Decode reads a whole .au file and converts it to 16-bit stereo PCM.
// Mono input is duplicated to both channels.
func Decode(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read au: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotAU, len(data))
	}

	var h header
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("read au header: %w", err)
	}
	if h.Magic != auMagic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrNotAU, h.Magic)
	}
	if h.Channels != 1 && h.Channels != 2 {
		return nil, fmt.Errorf("unsupported au channel count: %d", h.Channels)
	}
	if h.SampleRate == 0 {
		return nil, errors.New("au sample rate is zero")
	}
	if int(h.DataOffset) < auHeaderSize || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("invalid au data offset: %d (file size %d)", h.DataOffset, len(data))
	}

	body := data[h.DataOffset:]
	// 0xFFFFFFFF means "unknown size": use the rest of the file.
	if h.DataSize != 0xFFFFFFFF && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case EncodingMuLaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = MuLawToLinear(b)
		}
	case EncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[2*i:]))
		}
	default:
		return nil, fmt.Errorf("unsupported au encoding: %d", h.Encoding)
	}

	return &Stream{
		Reader:     bytes.NewReader(toStereoLE(samples, int(h.Channels))),
		sampleRate: int(h.SampleRate),
	}, nil
}

// MuLawToLinear expands one G.711 μ-law byte to a 16-bit sample.
func MuLawToLinear(b byte) int16 {
	u := ^b
	exponent := (u >> 4) & 0x07
	mantissa := int32(u & 0x0F)
	magnitude := ((mantissa<<3)+0x84)<<exponent - 0x84
	if u&0x80 != 0 {
		return int16(-magnitude)
	}
	return int16(magnitude)
}

func toStereoLE(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		left := samples[f*channels]
		right := left
		if channels == 2 {
			right = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(left))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(right))
	}
	return out
}
