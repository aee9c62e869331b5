package playlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Entry is a raw playlist entry as written in a playlist or config file.
type Entry struct {
	Title string `koanf:"title" json:"title"`
	URL   string `koanf:"url" json:"url"`
}

type fileDoc struct {
	Tracks []Entry `koanf:"tracks" json:"tracks"`
}

// Load reads a playlist file. TOML files declare [[tracks]] tables; JSON
// files hold either a top-level array of entries or a {"tracks": [...]} object.
func Load(filename string) (*Playlist, error) {
	var entries []Entry
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		entries, err = loadTOML(filename)
	case ".json":
		entries, err = loadJSON(filename)
	default:
		return nil, fmt.Errorf("unsupported playlist format: %s", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("load playlist %s: %w", filename, err)
	}

	return FromEntries(filepath.Dir(filename), entries)
}

func loadTOML(filename string) ([]Entry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(filename), toml.Parser()); err != nil {
		return nil, err
	}
	var doc fileDoc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, err
	}
	return doc.Tracks, nil
}

func loadJSON(filename string) ([]Entry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Tracks, nil
}

// FromEntries builds a playlist from raw entries. Relative local URLs are
// resolved against baseDir and missing titles are filled from file tags or
// the URL's base name.
func FromEntries(baseDir string, entries []Entry) (*Playlist, error) {
	tracks := make([]Track, 0, len(entries))
	for i, e := range entries {
		u := strings.TrimSpace(e.URL)
		if u == "" {
			return nil, fmt.Errorf("track %d (%q): missing url", i+1, e.Title)
		}
		u = resolveURL(baseDir, u)

		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = guessTitle(u)
		}
		tracks = append(tracks, Track{Title: title, URL: u})
	}
	return New(tracks...)
}

// IsRemote reports whether u points to an http or https resource.
func IsRemote(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// LocalPath returns the filesystem path for a local track URL. A file://
// prefix is stripped and its percent-escapes decoded; plain paths are
// returned as is.
func LocalPath(u string) string {
	rest, ok := strings.CutPrefix(u, "file://")
	if !ok {
		return u
	}
	if p, err := url.PathUnescape(rest); err == nil {
		return p
	}
	return rest
}

func resolveURL(baseDir, u string) string {
	if IsRemote(u) {
		return u
	}
	p := LocalPath(u)
	if baseDir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	return p
}

func guessTitle(u string) string {
	if !IsRemote(u) {
		if title := readTagTitle(u); title != "" {
			return title
		}
		base := filepath.Base(u)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return u
	}
	base := path.Base(parsed.Path)
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func readTagTitle(filename string) string {
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(m.Title())
}
