package keys_test

import (
	"math"
	"testing"

	"hdxpiano/internal/keys"
)

func TestParsePitch(t *testing.T) {
	tests := []struct {
		id     string
		number int
		freq   float64
	}{
		{"A4", 69, 440},
		{"C4", 60, 261.6256},
		{"Db4", 61, 277.1826},
		{"C#4", 61, 277.1826},
		{"F5", 77, 698.4565},
		{"A-1", 9, 13.75},
	}
	for _, tt := range tests {
		p, err := keys.ParsePitch(tt.id)
		if err != nil {
			t.Fatalf("ParsePitch(%s): %v", tt.id, err)
		}
		if p.Number != tt.number {
			t.Errorf("ParsePitch(%s).Number = %d, want %d", tt.id, p.Number, tt.number)
		}
		if math.Abs(p.Frequency()-tt.freq) > 1e-3 {
			t.Errorf("ParsePitch(%s).Frequency() = %.4f, want %.4f", tt.id, p.Frequency(), tt.freq)
		}
	}
}

func TestParsePitchErrors(t *testing.T) {
	for _, id := range []string{"", "C", "H4", "C#", "Cx4", "Db"} {
		if _, err := keys.ParsePitch(id); err == nil {
			t.Errorf("ParsePitch(%q) should fail", id)
		}
	}
}

func TestCents(t *testing.T) {
	p, _ := keys.ParsePitch("A4")
	if c := p.Cents(880); math.Abs(c-1200) > 1e-9 {
		t.Fatalf("Cents(880) = %v, want 1200", c)
	}
	if c := p.Cents(440); c != 0 {
		t.Fatalf("Cents(440) = %v, want 0", c)
	}
}

func TestDefinitionFrequency(t *testing.T) {
	d, _ := keys.Default().Lookup("A4")
	if d.Frequency() != 440 {
		t.Fatalf("A4 frequency = %v", d.Frequency())
	}
	if (keys.Definition{ID: "kick"}).Frequency() != 0 {
		t.Fatal("non-pitch id should have no frequency")
	}
}
