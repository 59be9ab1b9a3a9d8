package cli

import (
	"fmt"
	"time"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/tone"
)

type PlayCmd struct {
	Sound    string        `arg:"" help:"Sound to preview (bell|chime|buzz|piano)." default:"bell"`
	Duration time.Duration `short:"d" help:"Playback length." default:"3s"`
}

func (c *PlayCmd) Run(_ *Context) error {
	sound := models.Sound(c.Sound)
	if !sound.IsValid() {
		return fmt.Errorf("unknown sound %q", c.Sound)
	}

	engine := tone.NewEngine()
	engine.Play(sound, c.Duration)

	// playback is asynchronous, hold the process open for its length
	time.Sleep(c.Duration + 200*time.Millisecond)
	engine.Stop()
	return nil
}
