package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/wavelet/internal/playlist"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
	extM4A  = ".m4a"
	extOpus = ".opus"
)

// maxRemoteSize caps how much of a remote track is buffered in memory.
const maxRemoteSize = 512 << 20

// IsSupported reports whether the track at u has a decodable extension.
func IsSupported(u string) bool {
	switch formatExt(u) {
	case extMP3, extFLAC, extWAV, extOGG, extOGA, extM4A, extOpus:
		return true
	}
	return false
}

// formatExt returns the lowercase extension of a path or URL, ignoring any
// query string.
func formatExt(u string) string {
	if playlist.IsRemote(u) {
		if parsed, err := url.Parse(u); err == nil {
			return strings.ToLower(path.Ext(parsed.Path))
		}
	}
	return strings.ToLower(filepath.Ext(playlist.LocalPath(u)))
}

// memFile lets an in-memory buffer stand in for a seekable file.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// openSource opens u for reading. Local paths (optionally file://) are
// opened directly; remote tracks are downloaded whole so decoders can seek.
func openSource(ctx context.Context, client *http.Client, u string) (io.ReadSeekCloser, error) {
	if !playlist.IsRemote(u) {
		return os.Open(playlist.LocalPath(u))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", u, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	if len(data) > maxRemoteSize {
		return nil, fmt.Errorf("fetch %s: track larger than %s", u, humanize.IBytes(maxRemoteSize))
	}
	return memFile{bytes.NewReader(data)}, nil
}

// decode picks a decoder from the track extension. On error the source is
// closed.
func decode(ext string, src io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(src)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC files, which the decoder rejects.
		if err = skipID3v2(src); err == nil {
			streamer, format, err = flac.Decode(src)
		}
	case extWAV:
		streamer, format, err = wav.Decode(src)
	case extOGG, extOGA:
		if isOpus(src) {
			streamer, format, err = decodeOpus(src)
		} else {
			streamer, format, err = vorbis.Decode(src)
		}
	case extOpus:
		streamer, format, err = decodeOpus(src)
	case extM4A:
		streamer, format, err = decodeM4A(src)
	default:
		err = fmt.Errorf("unsupported format: %q", ext)
	}
	if err != nil {
		src.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}

// skipID3v2 advances r past an ID3v2 tag, or rewinds it if there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer: 7 significant bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

