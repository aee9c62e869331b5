package player

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the ALAC default frames per packet.
const alacFrameSize = 4096

// m4aStream decodes the packets of an MP4 audio container with AAC or
// ALAC. Output is always stereo: mono is duplicated.
type m4aStream struct {
	container *m4a.Reader
	closer    io.Closer
	codec     m4a.CodecType
	aac       *faad2.Decoder
	alac      *alac.Alac

	channels   int
	sampleSize int // bits, ALAC only
	length     int // frames
	packet     int // next packet index

	pending [][2]float64
	err     error
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	rate := int(container.SampleRate())
	s := &m4aStream{
		container:  container,
		closer:     rc,
		codec:      container.Codec(),
		channels:   int(container.Channels()),
		sampleSize: int(container.SampleSize()),
		length:     int(container.Duration().Seconds() * float64(rate)),
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}

	switch s.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := dec.Init(ctx, container.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, err
		}
		s.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  rate,
			SampleSize:  s.sampleSize,
			NumChannels: s.channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, err
		}
		s.alac = dec
		if s.sampleSize == 24 {
			format.Precision = 3
		}
	default:
		return nil, beep.Format{}, errors.New("m4a: unsupported codec")
	}

	return s, format, nil
}

func (s *m4aStream) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) && s.err == nil {
		if len(s.pending) == 0 {
			if s.packet >= s.container.SampleCount() {
				break
			}
			if err := s.decodePacket(); err != nil {
				s.err = err
				break
			}
			continue
		}
		copied := copy(samples[n:], s.pending)
		s.pending = s.pending[copied:]
		n += copied
	}
	return n, n > 0
}

func (s *m4aStream) decodePacket() error {
	data, err := s.container.ReadSample(s.packet)
	if err != nil {
		return err
	}
	s.packet++

	if s.aac != nil {
		pcm, err := s.aac.Decode(context.Background(), data)
		if err != nil {
			return err
		}
		s.pending = pcm16Frames(pcm, s.channels)
		return nil
	}
	s.pending = alacFrames(s.alac.Decode(data), s.sampleSize, s.channels)
	return nil
}

// pcm16Frames converts interleaved 16-bit samples to stereo frames.
func pcm16Frames(pcm []int16, channels int) [][2]float64 {
	if channels < 1 {
		return nil
	}
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		left := float64(pcm[i*channels]) / 32768
		right := left
		if channels > 1 {
			right = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

// alacFrames converts little-endian 16 or 24-bit interleaved PCM bytes to
// stereo frames.
func alacFrames(data []byte, sampleSize, channels int) [][2]float64 {
	width := 2
	scale := float64(1 << 15)
	if sampleSize == 24 {
		width = 3
		scale = 1 << 23
	}
	if channels < 1 {
		return nil
	}

	sample := func(off int) float64 {
		if width == 3 {
			v := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16
			v = v << 8 >> 8 // sign-extend 24 bits
			return float64(v) / scale
		}
		return float64(int16(uint16(data[off])|uint16(data[off+1])<<8)) / scale
	}

	stride := width * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := sample(off)
		right := left
		if channels > 1 {
			right = sample(off + width)
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

func (s *m4aStream) Err() error {
	return s.err
}

func (s *m4aStream) Len() int {
	return s.length
}

func (s *m4aStream) Position() int {
	rate := float64(s.container.SampleRate())
	return int(s.container.SampleTime(s.packet).Seconds() * rate)
}

// Seek lands on the packet containing p; positions are packet-accurate.
func (s *m4aStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	rate := float64(s.container.SampleRate())
	s.packet = s.container.SeekToTime(time.Duration(float64(p) / rate * float64(time.Second)))
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	if s.aac != nil {
		s.aac.Close(context.Background())
	}
	return s.closer.Close()
}
