package player

import (
	"encoding/binary"
	"errors"
	"io"
)

var errOggCapture = errors.New("ogg: missing capture pattern")

// oggPage is one page of an Ogg bitstream split into packets. A packet that
// continues on the next page is carried over by oggReader, not returned.
type oggPage struct {
	granule int64
	packets [][]byte
}

// oggReader reads pages sequentially from a single logical bitstream.
type oggReader struct {
	r       io.ReadSeeker
	partial []byte
	// set after rewind: a continued packet at the next page has lost its head
	resync bool
}

func newOggReader(r io.ReadSeeker) *oggReader {
	return &oggReader{r: r}
}

// header reads the 27-byte page header and its segment table.
func (o *oggReader) header() (granule int64, continued bool, segments []byte, err error) {
	var buf [27]byte
	if _, err := io.ReadFull(o.r, buf[:]); err != nil {
		return 0, false, nil, err
	}
	if string(buf[:4]) != "OggS" {
		return 0, false, nil, errOggCapture
	}
	if buf[4] != 0 {
		return 0, false, nil, errors.New("ogg: unsupported version")
	}
	granule = int64(binary.LittleEndian.Uint64(buf[6:14]))
	continued = buf[5]&0x01 != 0
	segments = make([]byte, buf[26])
	if _, err := io.ReadFull(o.r, segments); err != nil {
		return 0, false, nil, err
	}
	return granule, continued, segments, nil
}

func (o *oggReader) next() (*oggPage, error) {
	granule, continued, segments, err := o.header()
	if err != nil {
		return nil, err
	}
	drop := continued && o.resync
	o.resync = false

	size := 0
	for _, s := range segments {
		size += int(s)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(o.r, body); err != nil {
		return nil, err
	}

	page := &oggPage{granule: granule}
	packet := o.partial
	o.partial = nil
	off := 0
	for _, s := range segments {
		packet = append(packet, body[off:off+int(s)]...)
		off += int(s)
		// lacing value 255 means the packet continues
		if s < 255 {
			if !drop {
				page.packets = append(page.packets, packet)
			}
			drop = false
			packet = nil
		}
	}
	if packet != nil && !drop {
		o.partial = packet
	}
	o.resync = drop
	return page, nil
}

// skip reads a page header and seeks past its body.
func (o *oggReader) skip() (int64, error) {
	granule, _, segments, err := o.header()
	if err != nil {
		return 0, err
	}
	size := 0
	for _, s := range segments {
		size += int(s)
	}
	if _, err := o.r.Seek(int64(size), io.SeekCurrent); err != nil {
		return 0, err
	}
	return granule, nil
}

// rewind positions the reader at offset, dropping any carried packet.
func (o *oggReader) rewind(offset int64) error {
	o.partial = nil
	o.resync = offset > 0
	_, err := o.r.Seek(offset, io.SeekStart)
	return err
}

// lastGranule scans page headers from offset to the end of the stream and
// returns the highest granule position seen.
func (o *oggReader) lastGranule(offset int64) (int64, error) {
	if err := o.rewind(offset); err != nil {
		return 0, err
	}
	var last int64
	for {
		granule, err := o.skip()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		// -1 marks pages where no packet finishes
		if granule > last {
			last = granule
		}
	}
	return last, o.rewind(offset)
}
