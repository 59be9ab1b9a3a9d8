// Package tone renders the alarm sound catalog from oscillator primitives.
// There are no audio assets: every sound is synthesized into 44.1 kHz mono
// int16 PCM and handed to the playback layer.
package tone

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/jordanpayne/reveille/internal/models"
)

const (
	// SampleRate is the PCM sample rate for all synthesized sounds.
	SampleRate = 44100

	// envelopeFloor is the near-zero gain every sound decays to by the end
	// of its duration.
	envelopeFloor = 0.01
)

// oscillator is one scheduled tone: a frequency sounding over [start, stop)
// seconds into the clip. Square selects a square wave instead of a sine.
type oscillator struct {
	freq   float64
	start  float64
	stop   float64
	square bool
}

// Render synthesizes the named sound for the given duration and returns
// little-endian int16 PCM.
func Render(sound models.Sound, d time.Duration) []byte {
	secs := d.Seconds()
	if secs <= 0 {
		return nil
	}

	var oscs []oscillator
	var gain float64
	switch sound {
	case models.SoundChime:
		oscs, gain = chime(secs)
	case models.SoundBuzz:
		oscs, gain = buzz(secs)
	case models.SoundPiano:
		oscs, gain = piano(secs)
	default:
		oscs, gain = bell(secs)
	}

	return mix(oscs, gain, secs)
}

// bell layers three sines at rising frequencies, staggered by 50 ms each,
// all sustained to the end of the clip.
func bell(secs float64) ([]oscillator, float64) {
	freqs := []float64{800, 1200, 1600}
	oscs := make([]oscillator, 0, len(freqs))
	for i, f := range freqs {
		oscs = append(oscs, oscillator{freq: f, start: float64(i) * 0.05, stop: secs})
	}
	return oscs, 0.3
}

// chime loops a three-note melody (C5 E5 G5) with a 100 ms gap after each
// note until the clip is full.
func chime(secs float64) ([]oscillator, float64) {
	notes := []struct {
		freq float64
		dur  float64
	}{
		{523.25, 0.5}, // C5
		{659.25, 0.5}, // E5
		{783.99, 1.0}, // G5
	}

	var oscs []oscillator
	t := 0.0
	for t < secs {
		for _, n := range notes {
			oscs = append(oscs, oscillator{freq: n.freq, start: t, stop: t + n.dur})
			t += n.dur + 0.1
		}
	}
	return oscs, 0.2
}

// buzz is a single 1 kHz square wave held for the whole clip.
func buzz(secs float64) ([]oscillator, float64) {
	return []oscillator{{freq: 1000, stop: secs, square: true}}, 0.2
}

// piano strikes a four-note chord (C4 D4 E4 F4) for 300 ms on a fixed
// 500 ms cadence until the clip is full.
func piano(secs float64) ([]oscillator, float64) {
	chord := []float64{261.63, 293.66, 329.63, 349.23}

	var oscs []oscillator
	for t := 0.0; t < secs; t += 0.5 {
		for _, f := range chord {
			oscs = append(oscs, oscillator{freq: f, start: t, stop: t + 0.3})
		}
	}
	return oscs, 0.15
}

// mix sums the oscillators, applies a shared exponential-decay envelope
// from gain down to the floor, clamps, and packs into int16 LE bytes.
func mix(oscs []oscillator, gain, secs float64) []byte {
	n := int(secs * SampleRate)
	samples := make([]float64, n)

	for _, o := range oscs {
		lo := int(o.start * SampleRate)
		hi := int(o.stop * SampleRate)
		if lo < 0 {
			lo = 0
		}
		if hi > n {
			hi = n
		}
		for i := lo; i < hi; i++ {
			t := float64(i) / SampleRate
			s := math.Sin(2 * math.Pi * o.freq * t)
			if o.square {
				if s >= 0 {
					s = 1
				} else {
					s = -1
				}
			}
			samples[i] += s
		}
	}

	// Matches an exponential ramp from gain at t=0 to the floor at t=secs.
	decay := math.Log(envelopeFloor/gain) / secs

	buf := make([]byte, n*2)
	for i, s := range samples {
		t := float64(i) / SampleRate
		s *= gain * math.Exp(decay*t)
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s*32767)))
	}
	return buf
}
