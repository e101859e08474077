// Package volume holds the master volume state machine.
package volume

import (
	"math"

	"hdxpiano/pkg/format"
)

// GainSetter is the process-wide audio output level.
type GainSetter interface {
	SetMasterGain(gain float64)
}

// Controller owns the master volume. Volume moves in steps of 0.1 inside
// [0.1, 1.0] and is pushed to the output right after every change.
//
// Controller is not safe for concurrent use; callers drive it from a single
// event loop.
type Controller struct {
	out       GainSetter
	volume    float64
	observers []func(float64)
}

// New starts at full volume and sets the output to match.
func New(out GainSetter) *Controller {
	c := &Controller{out: out, volume: format.VolumeInitial}
	c.propagate()
	return c
}

func (c *Controller) Volume() float64 { return c.volume }

// Percent is the display form of Volume.
func (c *Controller) Percent() int {
	return int(math.Round(c.volume * 100))
}

// Increment raises the volume one step. It is a no-op at the ceiling and
// reports whether the volume changed.
func (c *Controller) Increment() bool {
	if c.volume >= format.VolumeMax {
		return false
	}
	return c.set(c.volume + format.VolumeStep)
}

// Decrement lowers the volume one step. It is a no-op at the floor.
func (c *Controller) Decrement() bool {
	if c.volume <= format.VolumeMin {
		return false
	}
	return c.set(c.volume - format.VolumeStep)
}

// Observe registers a read-only display callback, run after each change.
func (c *Controller) Observe(fn func(volume float64)) {
	c.observers = append(c.observers, fn)
}

func (c *Controller) set(v float64) bool {
	v = clamp(Round(v))
	if v == c.volume {
		return false
	}
	c.volume = v
	c.propagate()
	for _, fn := range c.observers {
		fn(c.volume)
	}
	return true
}

func (c *Controller) propagate() {
	if c.out != nil {
		c.out.SetMasterGain(Round(c.volume))
	}
}

// Round snaps v to one decimal place so repeated steps never drift.
func Round(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v float64) float64 {
	return math.Max(format.VolumeMin, math.Min(format.VolumeMax, v))
}
