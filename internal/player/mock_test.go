package player

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_RecordsCalls(t *testing.T) {
	m := NewMock()
	m.SetDuration("a.mp3", time.Minute)

	require.NoError(t, m.Load("a.mp3"))
	require.NoError(t, m.Play())
	m.SeekTo(30 * time.Second)
	m.SeekBy(45 * time.Second)
	m.Pause()

	assert.Equal(t, []string{
		"load a.mp3",
		"play",
		"seek_to 30s",
		"seek_by 45s",
		"pause",
	}, m.Calls())
	assert.Equal(t, time.Minute, m.Position(), "seek clamps to duration")
	assert.Equal(t, Paused, m.State())
}

func TestMock_InjectedErrors(t *testing.T) {
	m := NewMock()
	assert.ErrorIs(t, m.Play(), ErrNotLoaded)

	boom := errors.New("boom")
	m.FailLoad("bad.mp3", boom)
	assert.ErrorIs(t, m.Load("bad.mp3"), boom)
	assert.Equal(t, Unloaded, m.State())

	require.NoError(t, m.Load("good.mp3"))
	m.SetPlayErr(boom)
	assert.ErrorIs(t, m.Play(), boom)
	m.SetPlayErr(nil)
	require.NoError(t, m.Play())
}

type countingListener struct {
	times []time.Duration
	ended int
}

func (c *countingListener) OnTimeUpdate(pos time.Duration) { c.times = append(c.times, pos) }
func (c *countingListener) OnTrackEnded()                  { c.ended++ }

func TestMock_Emit(t *testing.T) {
	m := NewMock()
	l := &countingListener{}
	unsubscribe := m.Subscribe(l)
	require.Equal(t, 1, m.ListenerCount())

	require.NoError(t, m.Load("a.mp3"))
	require.NoError(t, m.Play())
	m.EmitTimeUpdate(3 * time.Second)
	m.EmitEnded()

	assert.Equal(t, []time.Duration{3 * time.Second}, l.times)
	assert.Equal(t, 1, l.ended)
	assert.Equal(t, Ended, m.State())

	unsubscribe()
	m.EmitEnded()
	assert.Equal(t, 1, l.ended)
	assert.Equal(t, 0, m.ListenerCount())
}

type failureListener struct {
	countingListener
	failed []string
}

func (f *failureListener) OnLoadFailed(url string, _ error) { f.failed = append(f.failed, url) }

func TestMock_EmitLoadFailed(t *testing.T) {
	m := NewMock()
	l := &failureListener{}
	m.Subscribe(l)

	require.NoError(t, m.Load("a.mp3"))
	m.EmitLoadFailed("other.mp3", errors.New("gone"))
	assert.Equal(t, Paused, m.State(), "failures of other tracks leave the mock loaded")

	m.EmitLoadFailed("a.mp3", errors.New("gone"))
	assert.Equal(t, Unloaded, m.State())
	assert.Equal(t, []string{"other.mp3", "a.mp3"}, l.failed)
}
