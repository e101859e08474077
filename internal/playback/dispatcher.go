// Package playback turns key presses into sounding notes.
package playback

import (
	"path/filepath"
	"sync"

	"hdxpiano/internal/keys"
	"hdxpiano/pkg/format"

	"github.com/faiface/beep"
	"github.com/rs/zerolog"
)

// Loader opens a fresh, self-closing streamer for one sample file.
type Loader interface {
	Load(path string) (beep.Streamer, error)
}

// Sink starts a voice. It must not stop or replace voices already playing.
type Sink interface {
	Play(s beep.Streamer)
}

// Focuser moves input focus to the key being played.
type Focuser interface {
	Focus(key keys.Definition)
}

// FocusFunc adapts a function to Focuser.
type FocusFunc func(keys.Definition)

func (f FocusFunc) Focus(k keys.Definition) { f(k) }

// Dispatcher loads and plays the sample of a key. Every call gets its own
// voice; overlapping notes sound together.
type Dispatcher struct {
	reg     *keys.Registry
	loader  Loader
	sink    Sink
	focus   Focuser
	baseDir string
	ext     string
	log     zerolog.Logger

	inflight sync.WaitGroup
}

type Option func(*Dispatcher)

func WithBaseDir(dir string) Option { return func(d *Dispatcher) { d.baseDir = dir } }

func WithExt(ext string) Option { return func(d *Dispatcher) { d.ext = ext } }

func WithLogger(l zerolog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

func WithFocuser(f Focuser) Option { return func(d *Dispatcher) { d.focus = f } }

func New(reg *keys.Registry, loader Loader, sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:     reg,
		loader:  loader,
		sink:    sink,
		baseDir: format.SampleDir,
		ext:     format.SampleExt,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ResourcePath is <base>/<id><ext>.
func (d *Dispatcher) ResourcePath(id string) string {
	return filepath.Join(d.baseDir, id+d.ext)
}

// PlayByID starts loading the sample for id and returns at once. A sample
// that cannot be loaded is logged and dropped.
func (d *Dispatcher) PlayByID(id string) {
	path := d.ResourcePath(id)
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		s, err := d.loader.Load(path)
		if err != nil {
			d.log.Warn().Err(err).Str("key", id).Str("path", path).Msg("sample load failed")
			return
		}
		d.sink.Play(s)
		d.log.Debug().Str("key", id).Msg("note on")
	}()
}

// PlayByTrigger resolves a keyboard character and plays its key. Characters
// that are not triggers are ignored; the result reports whether one matched.
func (d *Dispatcher) PlayByTrigger(c rune) bool {
	k, ok := d.reg.LookupByTrigger(c)
	if !ok {
		return false
	}
	if d.focus != nil {
		d.focus.Focus(k)
	}
	d.PlayByID(k.ID)
	return true
}

// Wait blocks until every started load has been played or dropped.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}
