package playback_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"hdxpiano/internal/keys"
	"hdxpiano/internal/playback"
	"hdxpiano/pkg/audioengine"

	"github.com/faiface/beep"
	"github.com/rs/zerolog"
)

// voice is a pointer so tests can tell instances apart.
type voice struct{ left int }

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.left == 0 {
		return 0, false
	}
	n := len(samples)
	if n > v.left {
		n = v.left
	}
	for i := range samples[:n] {
		samples[i] = [2]float64{}
	}
	v.left -= n
	return n, true
}

func (v *voice) Err() error { return nil }

type fakeLoader struct {
	mu    sync.Mutex
	paths []string
	fail  map[string]bool
}

func (l *fakeLoader) Load(path string) (beep.Streamer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
	if l.fail[path] {
		return nil, errors.New("no such sample")
	}
	return &voice{left: 10}, nil
}

type fakeSink struct {
	mu    sync.Mutex
	voices []beep.Streamer
}

func (s *fakeSink) Play(st beep.Streamer) {
	s.mu.Lock()
	s.voices = append(s.voices, st)
	s.mu.Unlock()
}

func newDispatcher(opts ...playback.Option) (*playback.Dispatcher, *fakeLoader, *fakeSink) {
	l := &fakeLoader{fail: map[string]bool{}}
	s := &fakeSink{}
	return playback.New(keys.Default(), l, s, opts...), l, s
}

func TestResourcePath(t *testing.T) {
	d, _, _ := newDispatcher(playback.WithBaseDir("/audio"), playback.WithExt(".mp3"))
	for _, k := range keys.Default().All() {
		want := "/audio/" + k.ID + ".mp3"
		if got := d.ResourcePath(k.ID); got != filepath.FromSlash(want) {
			t.Fatalf("ResourcePath(%s) = %s, want %s", k.ID, got, want)
		}
	}
}

func TestPlayByTriggerResolves(t *testing.T) {
	d, l, s := newDispatcher(playback.WithBaseDir("audio"), playback.WithExt(".wav"))
	if !d.PlayByTrigger('a') {
		t.Fatal("'a' should resolve")
	}
	d.Wait()
	if len(l.paths) != 1 || l.paths[0] != filepath.Join("audio", "C4.wav") {
		t.Fatalf("loaded %v, want [audio/C4.wav]", l.paths)
	}
	if len(s.voices) != 1 {
		t.Fatalf("played %d voices, want 1", len(s.voices))
	}
}

func TestPlayByTriggerUnknownIsNoop(t *testing.T) {
	var focused []string
	d, l, s := newDispatcher(playback.WithFocuser(playback.FocusFunc(func(k keys.Definition) {
		focused = append(focused, k.ID)
	})))
	if d.PlayByTrigger('q') {
		t.Fatal("'q' is not a trigger")
	}
	d.Wait()
	if len(l.paths) != 0 || len(s.voices) != 0 || len(focused) != 0 {
		t.Fatalf("unexpected activity: loads %v voices %d focus %v", l.paths, len(s.voices), focused)
	}
}

func TestEveryPressGetsItsOwnVoice(t *testing.T) {
	d, l, s := newDispatcher()
	for i := 0; i < 8; i++ {
		d.PlayByID("C4")
		d.PlayByID("E4")
		d.PlayByID("G4")
	}
	d.Wait()
	if len(l.paths) != 24 || len(s.voices) != 24 {
		t.Fatalf("loads %d voices %d, want 24 each", len(l.paths), len(s.voices))
	}
	for i := range s.voices {
		for j := i + 1; j < len(s.voices); j++ {
			if s.voices[i] == s.voices[j] {
				t.Fatal("a voice was reused")
			}
		}
	}
}

func TestLoadFailureIsLoggedNotFatal(t *testing.T) {
	var buf bytes.Buffer
	var focused []string
	d, l, s := newDispatcher(
		playback.WithBaseDir("audio"),
		playback.WithLogger(zerolog.New(&buf)),
		playback.WithFocuser(playback.FocusFunc(func(k keys.Definition) { focused = append(focused, k.ID) })),
	)
	l.fail[filepath.Join("audio", "D4.mp3")] = true

	if !d.PlayByTrigger('s') {
		t.Fatal("'s' should resolve")
	}
	d.PlayByTrigger('a')
	d.Wait()

	if len(s.voices) != 1 {
		t.Fatalf("played %d voices, want only C4", len(s.voices))
	}
	if len(focused) != 2 || focused[0] != "D4" {
		t.Fatalf("focus = %v; focus must not depend on playback", focused)
	}
	if !strings.Contains(buf.String(), "sample load failed") || !strings.Contains(buf.String(), "D4") {
		t.Fatalf("log = %q", buf.String())
	}
}

func TestMissingFileThroughRealLoader(t *testing.T) {
	out := audioengine.NewMixerOutput(48000)
	d := playback.New(keys.Default(), audioengine.FileLoader{Rate: 48000}, out,
		playback.WithBaseDir(t.TempDir()))
	d.PlayByID("C4")
	d.Wait()
	if out.Active() != 0 {
		t.Fatalf("Active = %d for a missing sample", out.Active())
	}
}

func TestRealSampleReachesMixer(t *testing.T) {
	dir := t.TempDir()
	pcm := audioengine.ToPCM16(audioengine.RenderTone(261.63, 0.2, 48000))
	if _, err := audioengine.WriteWAV(filepath.Join(dir, "C4.wav"), pcm, 48000); err != nil {
		t.Fatal(err)
	}
	out := audioengine.NewMixerOutput(48000)
	d := playback.New(keys.Default(), audioengine.FileLoader{Rate: 48000}, out,
		playback.WithBaseDir(dir), playback.WithExt(".wav"))

	d.PlayByTrigger('a')
	d.PlayByTrigger('a')
	d.Wait()
	if out.Active() != 2 {
		t.Fatalf("Active = %d, want two overlapping C4 voices", out.Active())
	}
}
