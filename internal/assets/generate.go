package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hdxpiano/internal/keys"
	"hdxpiano/pkg/audioengine"
	"hdxpiano/pkg/format"
)

var ErrExists = errors.New("sample already exists")

type GenerateOptions struct {
	Seconds   float64
	Rate      int
	Gain      float64 // applied to the 16-bit PCM, default 1
	Workers   int
	Overwrite bool
}

type Generated struct {
	Key      string
	Path     string
	Duration float64
	Err      error
}

// Generate renders a synthetic .wav for every key that has a pitch. Keys run
// through a small worker pool; done is called once per key, from the
// workers, so it must be safe for concurrent use.
func Generate(reg *keys.Registry, dir string, opts GenerateOptions, done func(Generated)) []Generated {
	if opts.Seconds <= 0 {
		opts.Seconds = format.ToneSeconds
	}
	if opts.Rate <= 0 {
		opts.Rate = format.SampleRate
	}
	if opts.Gain == 0 {
		opts.Gain = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}

	all := reg.All()
	results := make([]Generated, len(all))
	jobs := make(chan int, len(all))
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = generateOne(all[i], dir, opts)
				if done != nil {
					done(results[i])
				}
			}
		}()
	}

	for i := range all {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func generateOne(k keys.Definition, dir string, opts GenerateOptions) Generated {
	g := Generated{Key: k.ID, Path: filepath.Join(dir, k.ID+".wav")}

	freq := k.Frequency()
	if freq == 0 {
		g.Err = fmt.Errorf("key %s has no pitch", k.ID)
		return g
	}
	if !opts.Overwrite {
		if _, err := os.Stat(g.Path); err == nil {
			g.Err = fmt.Errorf("%w: %s", ErrExists, g.Path)
			return g
		}
	}

	pcm := audioengine.ToPCM16(audioengine.RenderTone(freq, opts.Seconds, opts.Rate))
	if opts.Gain != 1 {
		audioengine.ApplyQuickGain(pcm, opts.Gain)
	}
	g.Duration, g.Err = audioengine.WriteWAV(g.Path, pcm, opts.Rate)
	return g
}
