package player

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

const (
	DefaultPositionInterval = 250 * time.Millisecond
	DefaultFetchTimeout     = 30 * time.Second
)

// Options configures a Player.
type Options struct {
	// PositionInterval is the cadence of OnTimeUpdate while playing.
	PositionInterval time.Duration
	// FetchTimeout bounds downloading a remote track.
	FetchTimeout time.Duration
	// Client is used for http(s) tracks. Defaults to http.DefaultClient.
	Client *http.Client
	Logger zerolog.Logger
}

// Speaker state is process-wide: beep has a single output device.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

type event struct {
	pos time.Duration
}

type loadFailure struct {
	url string
	err error
}

// Player renders audio through the beep speaker.
type Player struct {
	mu       sync.Mutex
	state    State
	url      string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	// loadSeq identifies the pending background load; a fetch that finishes
	// after another Load or a release is discarded.
	loadSeq     uint64
	autoplay    bool
	pendingSeek time.Duration

	// gen identifies the loaded stream. Completion callbacks carrying an
	// older generation belong to a replaced track and are dropped.
	gen atomic.Uint64

	listeners *listenerSet
	timeCh    chan event
	endedCh   chan uint64
	failedCh  chan loadFailure
	done      chan struct{}
	closeOnce sync.Once

	client       *http.Client
	fetchTimeout time.Duration
	logger       zerolog.Logger
}

// New creates a Player and starts its notification goroutines.
func New(opts Options) *Player {
	if opts.PositionInterval <= 0 {
		opts.PositionInterval = DefaultPositionInterval
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}

	p := &Player{
		state:        Unloaded,
		listeners:    newListenerSet(),
		timeCh:       make(chan event, 16),
		endedCh:      make(chan uint64, 4),
		failedCh:     make(chan loadFailure),
		done:         make(chan struct{}),
		client:       opts.Client,
		fetchTimeout: opts.FetchTimeout,
		logger:       opts.Logger.With().Str("component", "player").Logger(),
	}

	go p.dispatch()
	go p.reportPositions(opts.PositionInterval)

	return p
}

// Subscribe registers l for time updates and completion notifications.
func (p *Player) Subscribe(l Listener) func() {
	return p.listeners.add(l)
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load replaces the current track with u and returns without waiting for
// it: the source is fetched and decoded in the background while the player
// is Loading. Play, Pause and SeekTo issued meanwhile apply once the track
// is ready. Only an unsupported format fails synchronously; later failures
// go to listeners implementing LoadFailureListener.
func (p *Player) Load(u string) error {
	p.mu.Lock()
	p.releaseLocked()
	if !IsSupported(u) {
		p.mu.Unlock()
		return fmt.Errorf("unsupported format: %q", formatExt(u))
	}
	p.url = u
	p.state = Loading
	seq := p.loadSeq
	p.mu.Unlock()

	go p.fetch(seq, u)
	return nil
}

// fetch opens and decodes u off the caller's goroutine, then installs it
// unless a newer Load or a release superseded seq.
func (p *Player) fetch(seq uint64, u string) {
	streamer, format, err := p.open(u)
	if err == nil {
		if serr := ensureSpeaker(format.SampleRate); serr != nil {
			streamer.Close()
			streamer, err = nil, fmt.Errorf("init speaker: %w", serr)
		}
	}

	p.mu.Lock()
	if seq != p.loadSeq {
		p.mu.Unlock()
		if streamer != nil {
			streamer.Close()
		}
		return
	}
	if err != nil {
		p.releaseLocked()
		p.mu.Unlock()
		p.logger.Warn().Err(err).Str("url", u).Msg("track failed to load")
		select {
		case p.failedCh <- loadFailure{url: u, err: err}:
		case <-p.done:
		}
		return
	}

	p.streamer = streamer
	p.format = format
	start := min(max(format.SampleRate.N(p.pendingSeek), 0), streamer.Len())
	if start > 0 {
		if err := streamer.Seek(start); err != nil {
			p.logger.Warn().Err(err).Msg("seek before start failed")
			start = 0
		}
	}
	p.queueLocked(!p.autoplay)
	p.state = Paused
	if p.autoplay {
		p.state = Playing
	}
	p.autoplay = false
	p.pendingSeek = 0
	length := format.SampleRate.D(streamer.Len())
	p.mu.Unlock()

	p.logger.Debug().Str("url", u).Dur("duration", length).Msg("track loaded")
	p.post(format.SampleRate.D(start))
}

func (p *Player) open(u string) (beep.StreamSeekCloser, beep.Format, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.fetchTimeout)
	defer cancel()

	src, err := openSource(ctx, p.client, u)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if mem, ok := src.(memFile); ok {
		p.logger.Debug().
			Str("url", u).
			Str("size", humanize.Bytes(uint64(mem.Size()))).
			Msg("fetched remote track")
	}
	return decode(formatExt(u), src)
}

func ensureSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

// queueLocked hands the current streamer to the speaker under a fresh
// generation. Must be called with p.mu held.
func (p *Player) queueLocked(paused bool) {
	gen := p.gen.Add(1)

	var s beep.Streamer = p.streamer
	speakerMu.Lock()
	rate := speakerSampleRate
	speakerMu.Unlock()
	if p.format.SampleRate != rate {
		s = beep.Resample(4, p.format.SampleRate, rate, p.streamer)
	}

	p.ctrl = &beep.Ctrl{Streamer: s, Paused: paused}
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked: hand off
		// without blocking and without touching p.mu.
		select {
		case p.endedCh <- gen:
		default:
		}
	})))
}

// releaseLocked stops audio, closes the current streamer and abandons any
// pending load.
func (p *Player) releaseLocked() {
	p.loadSeq++
	p.autoplay = false
	p.pendingSeek = 0
	if p.streamer == nil {
		p.state = Unloaded
		p.url = ""
		return
	}

	p.gen.Add(1)
	speaker.Clear()
	p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.url = ""
	p.state = Unloaded
}

// Play starts or resumes playback. From Ended it restarts the track.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Unloaded:
		return ErrNotLoaded
	case Playing:
		return nil
	case Loading:
		p.autoplay = true
		return nil
	case Ended:
		if err := p.rewindLocked(0); err != nil {
			return err
		}
		p.queueLocked(false)
	case Paused:
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}
	p.state = Playing
	return nil
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Loading {
		p.autoplay = false
		return
	}
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

func (p *Player) rewindLocked(sample int) error {
	if err := p.streamer.Seek(sample); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// SeekTo moves the playback position, clamped to [0, duration].
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	if p.streamer == nil {
		if p.state == Loading {
			p.pendingSeek = max(pos, 0)
		}
		p.mu.Unlock()
		return
	}

	target := min(max(p.format.SampleRate.N(pos), 0), p.streamer.Len())

	if p.state == Ended {
		// The finished stream is no longer on the speaker; re-queue it paused.
		if err := p.rewindLocked(target); err != nil {
			p.mu.Unlock()
			p.logger.Warn().Err(err).Msg("seek after end failed")
			return
		}
		p.queueLocked(true)
		p.state = Paused
	} else {
		speaker.Lock()
		err := p.streamer.Seek(target)
		speaker.Unlock()
		if err != nil {
			p.mu.Unlock()
			p.logger.Warn().Err(err).Dur("position", pos).Msg("seek failed")
			return
		}
	}
	actual := p.format.SampleRate.D(target)
	p.mu.Unlock()

	p.post(actual)
}

// SeekBy moves the position by delta relative to the current position.
func (p *Player) SeekBy(delta time.Duration) {
	p.SeekTo(p.Position() + delta)
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return p.pendingSeek
	}
	speaker.Lock()
	n := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(n)
}

// Duration returns the loaded track's length, or false if unknown.
func (p *Player) Duration() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0, false
	}
	n := p.streamer.Len()
	if n <= 0 {
		return 0, false
	}
	return p.format.SampleRate.D(n), true
}

// Close stops playback, stops the notification goroutines and releases the
// current track.
func (p *Player) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		p.releaseLocked()
		p.mu.Unlock()
	})
	return nil
}

// post queues a time update without blocking; stale updates are dropped.
func (p *Player) post(pos time.Duration) {
	select {
	case p.timeCh <- event{pos: pos}:
	default:
	}
}

// dispatch delivers notifications to listeners one at a time.
func (p *Player) dispatch() {
	for {
		select {
		case <-p.done:
			return
		case ev := <-p.timeCh:
			p.listeners.timeUpdate(ev.pos)
		case gen := <-p.endedCh:
			if p.finish(gen) {
				p.listeners.trackEnded()
			}
		case f := <-p.failedCh:
			p.listeners.loadFailed(f.url, f.err)
		}
	}
}

// finish marks the stream with generation gen as ended. Returns false for
// completions of streams that have since been replaced.
func (p *Player) finish(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen.Load() || p.state != Playing {
		return false
	}
	p.state = Ended
	p.logger.Debug().Str("url", p.url).Msg("track ended")
	return true
}

func (p *Player) reportPositions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			if p.State() == Playing {
				p.post(p.Position())
			}
		}
	}
}
