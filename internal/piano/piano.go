// Package piano is the surface a renderer talks to: the ordered keys, the
// two input entry points, the master volume and the display toggle.
package piano

import (
	"hdxpiano/internal/keys"
	"hdxpiano/internal/playback"
	"hdxpiano/internal/volume"

	"github.com/rs/zerolog"
)

// Output is what the piano needs from the audio engine.
type Output interface {
	playback.Sink
	volume.GainSetter
}

type Options struct {
	Registry  *keys.Registry
	Loader    playback.Loader
	Output    Output
	SampleDir string
	SampleExt string
	Logger    zerolog.Logger
}

const (
	EventFocus   = "FOCUS"
	EventVolume  = "VOLUME_CHANGED"
	EventToggled = "TOGGLED"
)

// Event tells the renderer what to redraw.
type Event struct {
	Type    string  `json:"type"`
	Key     string  `json:"key,omitempty"`
	Volume  float64 `json:"volume"`
	Percent int     `json:"percent"`
	Checked bool    `json:"checked"`
}

type Status struct {
	Volume  float64 `json:"volume"`
	Percent int     `json:"percent"`
	Checked bool    `json:"checked"`
	Focused string  `json:"focused"`
	Keys    int     `json:"keys"`
}

// Piano is driven from one event loop and is not safe for concurrent use.
type Piano struct {
	reg  *keys.Registry
	disp *playback.Dispatcher
	vol  *volume.Controller
	log  zerolog.Logger

	checked   bool
	focused   string
	listeners []func(Event)
}

func New(o Options) *Piano {
	if o.Registry == nil {
		o.Registry = keys.Default()
	}
	p := &Piano{reg: o.Registry, log: o.Logger}

	opts := []playback.Option{
		playback.WithLogger(o.Logger),
		playback.WithFocuser(p),
	}
	if o.SampleDir != "" {
		opts = append(opts, playback.WithBaseDir(o.SampleDir))
	}
	if o.SampleExt != "" {
		opts = append(opts, playback.WithExt(o.SampleExt))
	}
	p.disp = playback.New(o.Registry, o.Loader, o.Output, opts...)

	p.vol = volume.New(o.Output)
	p.vol.Observe(func(float64) { p.emit(EventVolume, "") })
	return p
}

// Subscribe registers a renderer callback.
func (p *Piano) Subscribe(fn func(Event)) {
	p.listeners = append(p.listeners, fn)
}

// Keys is the render order.
func (p *Piano) Keys() []keys.Definition { return p.reg.All() }

func (p *Piano) Registry() *keys.Registry { return p.reg }

func (p *Piano) Dispatcher() *playback.Dispatcher { return p.disp }

// Press handles a pointer click on the key with the given id.
func (p *Piano) Press(id string) bool {
	k, ok := p.reg.Lookup(id)
	if !ok {
		return false
	}
	p.Focus(k)
	p.disp.PlayByID(k.ID)
	return true
}

// Type handles a keyboard character.
func (p *Piano) Type(c rune) bool {
	return p.disp.PlayByTrigger(c)
}

// Focus is called by the dispatcher before a keyboard note starts.
func (p *Piano) Focus(k keys.Definition) {
	p.focused = k.ID
	p.emit(EventFocus, k.ID)
}

func (p *Piano) Focused() string { return p.focused }

func (p *Piano) VolumeUp() bool   { return p.vol.Increment() }
func (p *Piano) VolumeDown() bool { return p.vol.Decrement() }
func (p *Piano) Volume() float64  { return p.vol.Volume() }
func (p *Piano) Percent() int     { return p.vol.Percent() }

// Toggle flips the display flag and returns the new value. The piano itself
// never reads it.
func (p *Piano) Toggle() bool {
	p.checked = !p.checked
	p.emit(EventToggled, "")
	return p.checked
}

func (p *Piano) Checked() bool { return p.checked }

func (p *Piano) Status() Status {
	return Status{
		Volume:  p.vol.Volume(),
		Percent: p.vol.Percent(),
		Checked: p.checked,
		Focused: p.focused,
		Keys:    p.reg.Len(),
	}
}

// Close waits for samples still loading.
func (p *Piano) Close() {
	p.disp.Wait()
}

func (p *Piano) emit(typ, key string) {
	ev := Event{
		Type:    typ,
		Key:     key,
		Volume:  p.vol.Volume(),
		Percent: p.vol.Percent(),
		Checked: p.checked,
	}
	p.log.Debug().Str("event", typ).Str("key", key).Float64("volume", ev.Volume).Msg("piano event")
	for _, fn := range p.listeners {
		fn(ev)
	}
}
