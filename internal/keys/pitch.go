package keys

import (
	"fmt"
	"math"
	"strconv"
)

// Pitch is a note in scientific pitch notation. Number counts semitones with
// C-1 = 0, so A4 = 69.
type Pitch struct {
	Name   string
	Octave int
	Number int
}

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParsePitch reads ids like "C4", "Db4", "F#5" or "A-1".
func ParsePitch(id string) (Pitch, error) {
	if len(id) < 2 {
		return Pitch{}, fmt.Errorf("pitch %q: too short", id)
	}
	base, ok := semitones[id[0]]
	if !ok {
		return Pitch{}, fmt.Errorf("pitch %q: bad note letter", id)
	}
	rest := id[1:]
	switch rest[0] {
	case '#':
		base++
		rest = rest[1:]
	case 'b':
		base--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Pitch{}, fmt.Errorf("pitch %q: bad octave: %w", id, err)
	}
	return Pitch{
		Name:   id[:len(id)-len(rest)],
		Octave: octave,
		Number: (octave+1)*12 + base,
	}, nil
}

// Frequency is equal temperament with A4 = 440 Hz.
func (p Pitch) Frequency() float64 {
	return 440 * math.Pow(2, float64(p.Number-69)/12)
}

// Cents is the distance from the pitch to freq, positive when freq is sharp.
func (p Pitch) Cents(freq float64) float64 {
	return 1200 * math.Log2(freq/p.Frequency())
}
