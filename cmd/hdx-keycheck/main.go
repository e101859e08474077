/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hdxpiano/internal/assets"
	"hdxpiano/internal/codec"
	"hdxpiano/internal/config"
	"hdxpiano/pkg/audioengine"
)

const (
	version_minor      = 0
	version_major      = 1
	developer_title    = "Developer Hardiyanto"
	developer_subtitle = "Build 27/12/2025 Ebiet Version"
	app_name           = "HDX-Keycheck"
	general_usage      = "Usage: ./hdx-keycheck -samples <dir> [-ext .wav] [-pitch]"
	manifest_usage     = "Usage: ./hdx-keycheck -samples <dir> -manifest <out.json> | -verify <manifest.json>"
	spectrogram_usage  = "Usage: ./hdx-keycheck -samples <dir> -spectrogram <png dir>"

	// one second at 48 kHz is plenty for a picture of the attack
	spectrogram_frames = 48000
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}

	samples := flag.String("samples", cfg.SampleDir, "sample directory")
	ext := flag.String("ext", cfg.SampleExt, "sample extension")
	keyMap := flag.String("keymap", cfg.KeyMap, "YAML key map")
	pitch := flag.Bool("pitch", false, "check every sample is within 50 cents of its key")
	jsonDump := flag.Bool("jsondump", false, "dump the report as JSON")
	manifest := flag.String("manifest", "", "write a BLAKE2b manifest of the sample set")
	verify := flag.String("verify", "", "verify the sample set against a manifest")
	spectro := flag.String("spectrogram", "", "write one spectrogram PNG per key into this folder")
	help := flag.Bool("help", false, "usage")
	flag.Parse()

	if *help {
		fmt.Printf("\n%s %d.%d\n", app_name, version_major, version_minor)
		fmt.Printf("%s %s\n", developer_title, developer_subtitle)
		fmt.Printf("%s\n", general_usage)
		fmt.Printf("%s\n", manifest_usage)
		fmt.Printf("%s\n", spectrogram_usage)
		return
	}

	cfg.KeyMap = *keyMap
	reg, err := cfg.Registry()
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}

	if *verify != "" {
		m, err := assets.ReadManifest(*verify)
		if err != nil {
			fmt.Printf("[FAIL] %v\n", err)
			os.Exit(1)
		}
		bad := assets.Verify(m, *samples)
		for _, b := range bad {
			fmt.Printf(" [!] %-4s %-12s %s\n", b.Key, b.File, b.Reason)
		}
		if len(bad) > 0 {
			fmt.Printf("[FAIL] %d of %d samples differ from %s\n", len(bad), len(m.Entries), *verify)
			os.Exit(1)
		}
		fmt.Printf("[OK] %d samples match %s\n", len(m.Entries), *verify)
		return
	}

	report := assets.Check(reg, *samples, *ext, assets.Options{Pitch: *pitch})

	if *jsonDump {
		j, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(j))
	} else {
		printReport(report)
	}

	if *spectro != "" {
		if err := dumpSpectrograms(report, *spectro); err != nil {
			fmt.Printf("[FAIL] %v\n", err)
			os.Exit(1)
		}
	}

	if !report.OK() {
		os.Exit(1)
	}

	if *manifest != "" {
		m, err := assets.BuildManifest(reg, *samples, *ext)
		if err != nil {
			fmt.Printf("[FAIL] %v\n", err)
			os.Exit(1)
		}
		m.CreatedDate = time.Now().Format("2006-01-02")
		if err := assets.WriteManifest(*manifest, m); err != nil {
			fmt.Printf("[FAIL] %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[OK] Manifest written: %s\n", *manifest)
	}
}

func printReport(r assets.Report) {
	fmt.Println(strings.Repeat("=", 75))
	fmt.Printf(" SAMPLE DIR    : %s\n", r.Dir)
	fmt.Println(strings.Repeat("-", 75))
	fmt.Printf(" %-4s | %-12s | %-8s | %-8s | %-10s | %s\n", "KEY", "STATUS", "DURATION", "PEAK", "PITCH", "DETAIL")
	fmt.Println(strings.Repeat("-", 75))
	for _, res := range r.Results {
		pitch := "-"
		if res.Frequency > 0 {
			pitch = fmt.Sprintf("%+.0fc", res.Cents)
		}
		fmt.Printf(" %-4s | %-12s | %6.2fs  | %5.1fdB  | %-10s | %s\n",
			res.Key, res.Status, res.Duration, res.PeakDB, pitch, res.Detail)
	}
	for _, o := range r.Orphans {
		fmt.Printf(" [?] %s has no key\n", o)
	}
	fmt.Println(strings.Repeat("=", 75))
	failed := len(r.Failed())
	fmt.Printf(" %d keys, %d failed\n", len(r.Results), failed)
}

func dumpSpectrograms(r assets.Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, res := range r.Results {
		if res.Status == assets.StatusMissing || res.Status == assets.StatusBroken {
			continue
		}
		pcm, _, err := audioengine.ReadMono(res.Path, spectrogram_frames)
		if err != nil {
			return fmt.Errorf("%s: %w", res.Key, err)
		}
		png, err := codec.GenerateSpectrogram(pcm)
		if err != nil {
			return fmt.Errorf("%s spectrogram: %w", res.Key, err)
		}
		if err := os.WriteFile(filepath.Join(dir, res.Key+".png"), png, 0644); err != nil {
			return err
		}
	}
	fmt.Printf("[OK] Spectrograms written to %s\n", dir)
	return nil
}
