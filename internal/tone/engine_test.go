package tone

import (
	"errors"
	"testing"
	"time"

	"github.com/jordanpayne/reveille/internal/models"
)

type fakePlayer struct {
	playing bool
	closed  bool
}

func (f *fakePlayer) Play()           { f.playing = true }
func (f *fakePlayer) IsPlaying() bool { return f.playing && !f.closed }
func (f *fakePlayer) Close() error {
	f.playing = false
	f.closed = true
	return nil
}

func newTestEngine() (*Engine, *[]*fakePlayer) {
	players := &[]*fakePlayer{}
	e := &Engine{
		newPlayer: func(pcm []byte) (player, error) {
			p := &fakePlayer{}
			*players = append(*players, p)
			return p, nil
		},
	}
	return e, players
}

func TestPlayStartsOneSession(t *testing.T) {
	e, players := newTestEngine()

	e.Play(models.SoundBell, time.Second)
	if len(*players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(*players))
	}
	if !e.IsPlaying() {
		t.Error("engine should report playing after Play")
	}
}

func TestSecondPlayIsNoOp(t *testing.T) {
	e, players := newTestEngine()

	e.Play(models.SoundBell, time.Second)
	e.Play(models.SoundBuzz, time.Second)

	if len(*players) != 1 {
		t.Errorf("second Play without Stop started a new session: %d players", len(*players))
	}
}

func TestPlayAfterStop(t *testing.T) {
	e, players := newTestEngine()

	e.Play(models.SoundBell, time.Second)
	e.Stop()

	if e.IsPlaying() {
		t.Error("engine should not report playing after Stop")
	}
	if !(*players)[0].closed {
		t.Error("Stop should close the active player")
	}

	e.Play(models.SoundChime, time.Second)
	if len(*players) != 2 {
		t.Errorf("Play after Stop should start a new session, got %d players", len(*players))
	}
}

func TestStopWithoutPlayIsSafe(t *testing.T) {
	e, _ := newTestEngine()
	e.Stop()
	e.Stop()
}

func TestPlayAfterNaturalEnd(t *testing.T) {
	e, players := newTestEngine()

	e.Play(models.SoundBell, time.Second)
	// Simulate the clip draining on its own.
	(*players)[0].playing = false

	e.Play(models.SoundPiano, time.Second)
	if len(*players) != 2 {
		t.Errorf("Play after natural end should start a new session, got %d players", len(*players))
	}
}

func TestPlayerFailureResetsFlag(t *testing.T) {
	calls := 0
	e := &Engine{
		newPlayer: func(pcm []byte) (player, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("no audio device")
			}
			return &fakePlayer{}, nil
		},
	}

	e.Play(models.SoundBell, time.Second)
	if e.IsPlaying() {
		t.Error("engine should not be playing after a player failure")
	}

	// The failure must not wedge the engine.
	e.Play(models.SoundBell, time.Second)
	if !e.IsPlaying() {
		t.Error("engine should recover after a player failure")
	}
}
