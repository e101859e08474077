package audioengine

import (
	"math"
	"sync"
	"time"

	"hdxpiano/pkg/format"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// Output is the process-wide audio sink: every note is mixed into it and a
// single master gain scales the mix.
type Output interface {
	Play(s beep.Streamer)
	SetMasterGain(gain float64)
	SampleRate() beep.SampleRate
}

// MixerOutput mixes any number of streamers through one master volume stage.
// Notes already sounding follow gain changes.
type MixerOutput struct {
	rate   beep.SampleRate
	lock   sync.Locker
	mixer  beep.Mixer
	master *effects.Volume
	gain   float64
}

// NewMixerOutput builds a mixer that is pulled through its own Stream method,
// for offline rendering.
func NewMixerOutput(rate beep.SampleRate) *MixerOutput {
	return newMixerOutput(rate, &sync.Mutex{})
}

func newMixerOutput(rate beep.SampleRate, lock sync.Locker) *MixerOutput {
	m := &MixerOutput{rate: rate, lock: lock, gain: 1}
	m.master = &effects.Volume{
		Streamer: &m.mixer,
		Base:     2,
	}
	return m
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// ======================================================
// Speaker output (single authority over the device)
// ======================================================

// NewSpeakerOutput opens the default device and starts the master stage.
func NewSpeakerOutput(rate beep.SampleRate, buffer time.Duration) (*MixerOutput, error) {
	if rate == 0 {
		rate = format.SampleRate
	}
	if buffer == 0 {
		buffer = format.BufferMillis * time.Millisecond
	}
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	m := newMixerOutput(rate, speakerLock{})
	speaker.Play(m.master)
	return m, nil
}

func (m *MixerOutput) SampleRate() beep.SampleRate { return m.rate }

// Play adds s to the mix. Each call is an independent voice; nothing already
// playing is stopped or reused.
func (m *MixerOutput) Play(s beep.Streamer) {
	m.lock.Lock()
	m.mixer.Add(s)
	m.lock.Unlock()
}

// SetMasterGain sets the linear gain of the whole mix. Zero silences it.
func (m *MixerOutput) SetMasterGain(gain float64) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.gain = gain
	if gain <= 0 {
		m.master.Silent = true
		return
	}
	m.master.Silent = false
	m.master.Volume = math.Log2(gain)
}

func (m *MixerOutput) MasterGain() float64 {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.gain
}

// Active is the number of voices still in the mix.
func (m *MixerOutput) Active() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.mixer.Len()
}

// Stream pulls the master mix. Only for outputs built with NewMixerOutput;
// the speaker pulls its own.
func (m *MixerOutput) Stream(samples [][2]float64) (int, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.master.Stream(samples)
}

func (m *MixerOutput) Err() error { return nil }
