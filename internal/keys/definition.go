package keys

import "fmt"

// Variant tells the renderer how to draw a key.
type Variant uint8

const (
	White Variant = iota
	Black
)

func (v Variant) String() string {
	switch v {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// ParseVariant accepts "white" or "black".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidDefinition, s)
}

// Definition is one playable key. ID doubles as the sample name.
type Definition struct {
	ID      string
	Trigger rune
	Variant Variant
}

// Frequency returns the pitch of the key in Hz, or 0 when the ID is not
// written in scientific pitch notation.
func (d Definition) Frequency() float64 {
	p, err := ParsePitch(d.ID)
	if err != nil {
		return 0
	}
	return p.Frequency()
}

func (d Definition) String() string {
	return fmt.Sprintf("%s(%q,%s)", d.ID, d.Trigger, d.Variant)
}
