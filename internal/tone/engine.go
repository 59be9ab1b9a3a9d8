package tone

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/jordanpayne/reveille/internal/logger"
	"github.com/jordanpayne/reveille/internal/models"
)

// player is the minimal playback surface the engine needs. The production
// implementation wraps an oto player; tests substitute a fake.
type player interface {
	Play()
	IsPlaying() bool
	Close() error
}

// Engine plays synthesized alarm sounds with at-most-one-active semantics:
// Play while a sound is still audible is a no-op, and Stop is always safe.
type Engine struct {
	mu        sync.Mutex
	playing   bool
	current   player
	newPlayer func(pcm []byte) (player, error)
}

// NewEngine returns an engine backed by the system audio device. The device
// is not opened until the first Play call.
func NewEngine() *Engine {
	return &Engine{newPlayer: newOtoPlayer}
}

// Play synthesizes the sound and starts playback for at most maxDuration.
// If a sound is already playing the call is a no-op. Playback failures are
// logged and reset the playing flag so later calls can try again.
func (e *Engine) Play(sound models.Sound, maxDuration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.playing {
		// A previously started clip may have drained on its own.
		if e.current != nil && e.current.IsPlaying() {
			return
		}
		e.reset()
	}
	e.playing = true

	pcm := Render(sound, maxDuration)
	p, err := e.newPlayer(pcm)
	if err != nil {
		logger.Error("Failed to play alarm sound", "sound", sound, "error", err)
		e.playing = false
		return
	}

	e.current = p
	p.Play()
}

// Stop silences any active sound and releases the player. Calling it when
// nothing is playing is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// IsPlaying reports whether a sound session is still active.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing && e.current != nil && e.current.IsPlaying()
}

func (e *Engine) reset() {
	if e.current != nil {
		if err := e.current.Close(); err != nil {
			logger.Warn("Failed to close audio player", "error", err)
		}
		e.current = nil
	}
	e.playing = false
}

// oto permits a single context per process, shared by every player.
var (
	otoCtx     *oto.Context
	otoCtxErr  error
	otoCtxOnce sync.Once
)

func audioContext() (*oto.Context, error) {
	otoCtxOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoCtxErr = fmt.Errorf("failed to open audio device: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoCtxErr
}

type otoPlayer struct {
	p *oto.Player
}

func newOtoPlayer(pcm []byte) (player, error) {
	ctx, err := audioContext()
	if err != nil {
		return nil, err
	}
	return &otoPlayer{p: ctx.NewPlayer(bytes.NewReader(pcm))}, nil
}

func (o *otoPlayer) Play()           { o.p.Play() }
func (o *otoPlayer) IsPlaying() bool { return o.p.IsPlaying() }
func (o *otoPlayer) Close() error    { return o.p.Close() }
