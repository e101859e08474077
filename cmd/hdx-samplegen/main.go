package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hdxpiano/internal/assets"
	"hdxpiano/internal/config"
	"hdxpiano/internal/keys"
	"hdxpiano/pkg/format"

	"github.com/chzyer/readline"
)

const (
	version_minor      = 0
	version_major      = 1
	developer_title    = "Developer Hardiyanto"
	developer_subtitle = "Build 27/12/2025 Ebiet Version"
	app_name           = "HDX-Samplegen"
)

type job struct {
	dir     string
	keyMap  string
	seconds float64
	gain    float64
	workers int
	force   bool
}

func main() {
	out := flag.String("out", "", "destination folder (interview when empty)")
	keyMap := flag.String("keymap", "", "YAML key map (default: built-in C4..F5)")
	seconds := flag.Float64("seconds", format.ToneSeconds, "length of every sample")
	gain := flag.Float64("gain", 1.0, "linear gain applied to the rendered PCM")
	workers := flag.Int("workers", 2, "worker threads")
	force := flag.Bool("force", false, "overwrite existing samples")
	flag.Parse()

	j := job{dir: *out, keyMap: *keyMap, seconds: *seconds, gain: *gain, workers: *workers, force: *force}
	if j.dir == "" {
		j = runSamplegenInterview(j)
	}

	var (
		reg *keys.Registry
		err error
	)
	if j.keyMap != "" {
		reg, err = keys.LoadKeyMap(j.keyMap)
	} else {
		reg = keys.Default()
	}
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(j.dir, 0755); err != nil {
		fmt.Printf("[FAIL] Cannot create %s: %v\n", j.dir, err)
		os.Exit(1)
	}

	fmt.Printf("\n[START] RENDERING %d keys into %s\n", reg.Len(), j.dir)
	bar := NewProgress(os.Stdout, reg.Len())
	results := assets.Generate(reg, j.dir, assets.GenerateOptions{
		Seconds:   j.seconds,
		Gain:      j.gain,
		Workers:   j.workers,
		Overwrite: j.force,
	}, func(g assets.Generated) { bar.Add(g.Err == nil) })

	failed := 0
	for _, g := range results {
		if g.Err == nil {
			continue
		}
		failed++
		if errors.Is(g.Err, assets.ErrExists) {
			fmt.Printf(" [SKIP] %-4s %v (use -force)\n", g.Key, g.Err)
			continue
		}
		fmt.Printf(" [FAIL] %-4s %v\n", g.Key, g.Err)
	}
	if failed > 0 {
		os.Exit(1)
	}
	fmt.Printf("\n[SUCCESS] %d samples written. Set %q in %s to play them.\n",
		len(results), "sample_ext: .wav", config.Path())
}

func runSamplegenInterview(j job) job {
	rl, err := readline.NewEx(&readline.Config{Prompt: ">> "})
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("\n%s version %d.%d\n", app_name, version_major, version_minor)
	fmt.Printf("%s\n", developer_title)
	fmt.Printf("%s\n", developer_subtitle)
	j.dir = ask(rl, "1. Destination Folder", format.SampleDir)
	j.keyMap = ask(rl, "2. Key Map (empty = built-in)", j.keyMap)
	if v, err := strconv.ParseFloat(ask(rl, "3. Seconds per Sample", fmt.Sprint(j.seconds)), 64); err == nil {
		j.seconds = v
	}
	if v, err := strconv.Atoi(ask(rl, "4. Worker Threads", strconv.Itoa(j.workers))); err == nil {
		j.workers = v
	}
	return j
}

func ask(rl *readline.Instance, prompt, def string) string {
	rl.SetPrompt(fmt.Sprintf("%s [%s]: ", prompt, def))
	line, _ := rl.Readline()
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}
