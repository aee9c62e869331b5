// Package playlist holds the fixed, ordered list of tracks the player works through.
package playlist

import "errors"

// ErrEmpty is returned when a playlist would contain no tracks.
var ErrEmpty = errors.New("playlist has no tracks")

// Track describes one playable item.
type Track struct {
	Title string
	URL   string
}

// Playlist holds an ordered, read-only collection of tracks.
// A Playlist always contains at least one track.
type Playlist struct {
	tracks []Track
}

// New creates a playlist from the given tracks.
// Returns ErrEmpty if no tracks are given.
func New(tracks ...Track) (*Playlist, error) {
	if len(tracks) == 0 {
		return nil, ErrEmpty
	}
	p := &Playlist{tracks: make([]Track, len(tracks))}
	copy(p.tracks, tracks)
	return p, nil
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Valid reports whether index addresses a track.
func (p *Playlist) Valid(index int) bool {
	return index >= 0 && index < len(p.tracks)
}

// Track returns the track at the given index.
func (p *Playlist) Track(index int) (Track, bool) {
	if !p.Valid(index) {
		return Track{}, false
	}
	return p.tracks[index], true
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Next returns the index after index, wrapping to 0 past the end.
func (p *Playlist) Next(index int) int {
	return (index + 1) % len(p.tracks)
}

// Previous returns the index before index, wrapping to the last track.
func (p *Playlist) Previous(index int) int {
	n := len(p.tracks)
	return (index - 1 + n) % n
}
