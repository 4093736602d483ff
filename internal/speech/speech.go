// Package speech defines the text-to-speech contract and the engines that
// fulfil it.
package speech

import (
	"context"
	"errors"
)

// ErrUnavailable reports that no speech capability is present on this
// system. Callers treat it as non-fatal and may show or log it.
var ErrUnavailable = errors.New("speech engine unavailable")

// EmergencyText is spoken by the board's emergency key.
const EmergencyText = "I need help now. This is an emergency."

// Voice describes one available synthesizer voice.
type Voice struct {
	Name     string
	Language string
}

// Options are per-utterance synthesis parameters.
type Options struct {
	Rate   float64
	Pitch  float64
	Volume float64
	Voice  string
}

// DefaultOptions returns neutral synthesis parameters.
func DefaultOptions() Options {
	return Options{Rate: 1, Pitch: 1, Volume: 1}
}

// Clamp bounds rate and pitch to [0.5, 2.0] and volume to [0.1, 1.0].
func (o Options) Clamp() Options {
	o.Rate = clamp(o.Rate, 0.5, 2.0)
	o.Pitch = clamp(o.Pitch, 0.5, 2.0)
	o.Volume = clamp(o.Volume, 0.1, 1.0)
	return o
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Engine is the speech capability the application depends on. Speak blocks
// until audible playback finishes or fails. Engines do not queue: callers
// hold a busy flag and must not start a second utterance while one is in
// flight.
type Engine interface {
	Speak(ctx context.Context, text string, opts Options) error
	Voices(ctx context.Context) ([]Voice, error)
}
