package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/jj11hh/opus"
)

const (
	opusSampleRate = 48000
	// largest Opus frame: 120ms at 48kHz
	opusMaxFrame = 5760
	// decoder convergence window before a seek target, 80ms
	opusPreroll = 3840
)

var (
	errNotOpus         = errors.New("opus: missing OpusHead")
	errOpusChannels    = errors.New("opus: only mono and stereo streams are supported")
	errOpusHeaderSplit = errors.New("opus: audio data does not start on a page boundary")
)

// opusHead holds the fields of the identification header this player needs.
type opusHead struct {
	channels int
	preSkip  int
}

func parseOpusHead(packet []byte) (opusHead, error) {
	if len(packet) < 19 || string(packet[:8]) != "OpusHead" {
		return opusHead{}, errNotOpus
	}
	// major version lives in the upper nibble and must be 0
	if packet[8]>>4 != 0 {
		return opusHead{}, errors.New("opus: unsupported version")
	}
	h := opusHead{
		channels: int(packet[9]),
		preSkip:  int(binary.LittleEndian.Uint16(packet[10:12])),
	}
	if h.channels < 1 || h.channels > 2 || packet[18] != 0 {
		return opusHead{}, errOpusChannels
	}
	return h, nil
}

// isOpus reports whether the Ogg stream in r carries Opus, and rewinds r.
func isOpus(r io.ReadSeeker) bool {
	page, err := newOggReader(r).next()
	_, _ = r.Seek(0, io.SeekStart)
	if err != nil || len(page.packets) == 0 {
		return false
	}
	_, err = parseOpusHead(page.packets[0])
	return err == nil
}

// opusStream decodes an Ogg Opus file. Output is always stereo at 48kHz.
type opusStream struct {
	ogg       *oggReader
	closer    io.Closer
	decoder   *opus.Decoder
	head      opusHead
	dataStart int64
	length    int

	page    *oggPage
	packet  int
	pcm     []float32
	pending [][2]float64
	skip    int // samples still to drop at stream start
	pos     int
	err     error
}

func decodeOpus(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	ogg := newOggReader(rc)

	// identification and comment headers
	var headers [][]byte
	for len(headers) < 2 {
		page, err := ogg.next()
		if err != nil {
			return nil, beep.Format{}, err
		}
		headers = append(headers, page.packets...)
	}
	head, err := parseOpusHead(headers[0])
	if err != nil {
		return nil, beep.Format{}, err
	}
	if len(headers) > 2 || ogg.partial != nil {
		return nil, beep.Format{}, errOpusHeaderSplit
	}

	dataStart, err := rc.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, beep.Format{}, err
	}
	last, err := ogg.lastGranule(dataStart)
	if err != nil {
		return nil, beep.Format{}, err
	}

	decoder, err := opus.NewDecoder(opusSampleRate, head.channels)
	if err != nil {
		return nil, beep.Format{}, err
	}

	s := &opusStream{
		ogg:       ogg,
		closer:    rc,
		decoder:   decoder,
		head:      head,
		dataStart: dataStart,
		length:    max(int(last)-head.preSkip, 0),
		pcm:       make([]float32, opusMaxFrame*head.channels),
		skip:      head.preSkip,
	}
	format := beep.Format{
		SampleRate:  opusSampleRate,
		NumChannels: 2,
		Precision:   2,
	}
	return s, format, nil
}

func (s *opusStream) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) && s.err == nil && s.pos < s.length {
		if len(s.pending) == 0 {
			if !s.decodePacket() {
				break
			}
			continue
		}
		// the last page's granule trims encoder padding
		avail := min(len(s.pending), s.length-s.pos)
		copied := copy(samples[n:], s.pending[:avail])
		s.pending = s.pending[copied:]
		s.pos += copied
		n += copied
	}
	return n, n > 0
}

// decodePacket fills pending from the next packet. It returns false at the
// end of the stream or on a read error.
func (s *opusStream) decodePacket() bool {
	for s.page == nil || s.packet >= len(s.page.packets) {
		page, err := s.ogg.next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return false
		}
		s.page = page
		s.packet = 0
	}

	data := s.page.packets[s.packet]
	s.packet++

	n, err := s.decoder.DecodeFloat32(data, s.pcm)
	if err != nil {
		// corrupt packets are skipped
		return true
	}
	frames := floatFrames(s.pcm[:n*s.head.channels], s.head.channels)
	if s.skip > 0 {
		drop := min(s.skip, len(frames))
		frames = frames[drop:]
		s.skip -= drop
	}
	s.pending = frames
	return true
}

// floatFrames converts interleaved float samples to stereo frames.
func floatFrames(pcm []float32, channels int) [][2]float64 {
	if channels < 1 {
		return nil
	}
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		left := float64(pcm[i*channels])
		right := left
		if channels > 1 {
			right = float64(pcm[i*channels+1])
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

func (s *opusStream) Err() error {
	return s.err
}

func (s *opusStream) Len() int {
	return s.length
}

func (s *opusStream) Position() int {
	return s.pos
}

// Seek restarts decoding at the last page ending before the preroll window
// and discards samples up to p.
func (s *opusStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	target := int64(max(p-opusPreroll, 0) + s.head.preSkip)

	if err := s.ogg.rewind(s.dataStart); err != nil {
		return err
	}
	start := s.dataStart
	var granule int64
	for {
		offset, err := s.ogg.r.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		g, err := s.ogg.skip()
		if err != nil || g > target {
			start = offset
			break
		}
		if g >= 0 {
			granule = g
		}
	}
	if err := s.ogg.rewind(start); err != nil {
		return err
	}

	decoder, err := opus.NewDecoder(opusSampleRate, s.head.channels)
	if err != nil {
		return err
	}
	s.decoder = decoder
	s.page = nil
	s.packet = 0
	s.pending = nil
	s.err = nil
	s.pos = max(int(granule)-s.head.preSkip, 0)
	s.skip = 0
	if start == s.dataStart {
		s.skip = s.head.preSkip
		s.pos = 0
	}

	discard := make([][2]float64, 512)
	for s.pos < p {
		if _, ok := s.Stream(discard[:min(len(discard), p-s.pos)]); !ok {
			break
		}
	}
	return s.err
}

func (s *opusStream) Close() error {
	return s.closer.Close()
}
