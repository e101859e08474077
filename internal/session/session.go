// Package session wires configuration, audio output and the piano together
// for the front-ends.
package session

import (
	"fmt"
	"os"

	"hdxpiano/internal/config"
	"hdxpiano/internal/logger"
	"hdxpiano/internal/piano"
	"hdxpiano/pkg/audioengine"

	"github.com/faiface/beep"
	"github.com/rs/zerolog"
)

// Open starts the speaker and returns a ready piano.
func Open(cfg config.Config, log zerolog.Logger) (*piano.Piano, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	out, err := audioengine.NewSpeakerOutput(rate, cfg.Buffer())
	if err != nil {
		return nil, fmt.Errorf("audio output: %w", err)
	}
	return Build(cfg, out, log)
}

// Build assembles a piano on an existing output.
func Build(cfg config.Config, out piano.Output, log zerolog.Logger) (*piano.Piano, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("key map: %w", err)
	}

	if st, err := os.Stat(cfg.SampleDir); err != nil || !st.IsDir() {
		log.Warn().Str("dir", cfg.SampleDir).Msg("sample directory not found, keys will be silent")
	}

	log.Info().
		Int("keys", reg.Len()).
		Str("samples", cfg.SampleDir).
		Str("ext", cfg.SampleExt).
		Int("rate", cfg.SampleRate).
		Msg("piano ready")

	return piano.New(piano.Options{
		Registry:  reg,
		Loader:    audioengine.FileLoader{Rate: beep.SampleRate(cfg.SampleRate)},
		Output:    out,
		SampleDir: cfg.SampleDir,
		SampleExt: cfg.SampleExt,
		Logger:    logger.Component(log, "piano"),
	}), nil
}
