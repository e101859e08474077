// Package assets verifies that a sample directory satisfies the key table:
// one readable, audible, in-tune file per key.
package assets

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hdxpiano/internal/codec"
	"hdxpiano/internal/keys"
	"hdxpiano/pkg/audioengine"
)

const (
	StatusOK        = "ok"
	StatusMissing   = "missing"
	StatusBroken    = "unreadable"
	StatusSilent    = "silent"
	StatusOutOfTune = "out_of_tune"
)

type Options struct {
	Pitch          bool
	ToleranceCents float64 // default 50
	SilenceDB      float64 // default -60 dBFS peak
}

type Result struct {
	Key       string  `json:"key"`
	Path      string  `json:"path"`
	Status    string  `json:"status"`
	Detail    string  `json:"detail,omitempty"`
	Duration  float64 `json:"duration"`
	PeakDB    float64 `json:"peak_db"`
	Frequency float64 `json:"frequency,omitempty"`
	Cents     float64 `json:"cents,omitempty"`
}

type Report struct {
	Dir     string   `json:"dir"`
	Results []Result `json:"results"`
	Orphans []string `json:"orphans,omitempty"`
}

func (r Report) OK() bool { return len(r.Failed()) == 0 }

func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status != StatusOK {
			out = append(out, res)
		}
	}
	return out
}

// Check inspects <dir>/<id><ext> for every key of reg, in key order.
func Check(reg *keys.Registry, dir, ext string, opts Options) Report {
	if opts.ToleranceCents == 0 {
		opts.ToleranceCents = 50
	}
	if opts.SilenceDB == 0 {
		opts.SilenceDB = -60
	}

	rep := Report{Dir: dir}
	for _, k := range reg.All() {
		rep.Results = append(rep.Results, checkKey(k, filepath.Join(dir, k.ID+ext), opts))
	}
	rep.Orphans = orphans(reg, dir, ext)
	return rep
}

func checkKey(k keys.Definition, path string, opts Options) Result {
	res := Result{Key: k.ID, Path: path, Status: StatusOK}

	pcm, rate, err := audioengine.ReadMono(path, 0)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.Status = StatusMissing
		return res
	case err != nil:
		res.Status = StatusBroken
		res.Detail = err.Error()
		return res
	}

	res.Duration = float64(len(pcm)) / float64(rate)
	peak, _ := codec.Levels(pcm)
	res.PeakDB = codec.DBFS(peak)
	if math.IsInf(res.PeakDB, -1) {
		res.PeakDB = -999
	}
	if res.PeakDB < opts.SilenceDB {
		res.Status = StatusSilent
		res.Detail = fmt.Sprintf("peak %.1f dBFS", res.PeakDB)
		return res
	}

	if !opts.Pitch {
		return res
	}
	want, err := keys.ParsePitch(k.ID)
	if err != nil {
		// not a note name, nothing to compare against
		return res
	}
	freq, err := codec.DominantFrequency(pcm, int(rate))
	if err != nil {
		res.Status = StatusBroken
		res.Detail = err.Error()
		return res
	}
	res.Frequency = freq
	res.Cents = want.Cents(freq)
	if math.Abs(res.Cents) > opts.ToleranceCents {
		res.Status = StatusOutOfTune
		res.Detail = fmt.Sprintf("%.1f Hz, want %.1f Hz", freq, want.Frequency())
	}
	return res
}

// orphans lists sample files that no key points at.
func orphans(reg *keys.Registry, dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		if _, ok := reg.Lookup(strings.TrimSuffix(name, filepath.Ext(name))); !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
