package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	PlayingChanged   <-chan PlayingChange
	TrackChanged     <-chan TrackChange
	PositionChanged  <-chan PositionChange
	TrackListChanged <-chan TrackListChange
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	playingCh   chan PlayingChange
	trackCh     chan TrackChange
	positionCh  chan PositionChange
	trackListCh chan TrackListChange
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		playingCh:   make(chan PlayingChange, eventBufferSize),
		trackCh:     make(chan TrackChange, eventBufferSize),
		positionCh:  make(chan PositionChange, eventBufferSize),
		trackListCh: make(chan TrackListChange, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.PlayingChanged = s.playingCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.TrackListChanged = s.trackListCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// The send helpers never block: a slow subscriber loses events rather than
// stalling the controller.

func (s *Subscription) sendPlaying(e PlayingChange) {
	select {
	case s.playingCh <- e:
	default:
	}
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendTrackList(e TrackListChange) {
	select {
	case s.trackListCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
