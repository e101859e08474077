package keys

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// keyMapFile is the on-disk key table:
//
//	keys:
//	  - {id: C4, trigger: a, variant: white}
//	  - {id: Db4, trigger: w, variant: black}
type keyMapFile struct {
	Keys []keyMapEntry `yaml:"keys"`
}

type keyMapEntry struct {
	ID      string `yaml:"id"`
	Trigger string `yaml:"trigger"`
	Variant string `yaml:"variant"`
}

// LoadKeyMap reads a YAML key table from path.
func LoadKeyMap(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key map: %w", err)
	}
	r, err := ParseKeyMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func ParseKeyMap(data []byte) (*Registry, error) {
	var f keyMapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse key map: %w", err)
	}
	if len(f.Keys) == 0 {
		return nil, fmt.Errorf("%w: key map is empty", ErrInvalidDefinition)
	}
	defs := make([]Definition, 0, len(f.Keys))
	for _, e := range f.Keys {
		if utf8.RuneCountInString(e.Trigger) != 1 {
			return nil, fmt.Errorf("%w: key %s trigger %q must be one character", ErrInvalidDefinition, e.ID, e.Trigger)
		}
		c, _ := utf8.DecodeRuneInString(e.Trigger)
		variant := White
		if e.Variant != "" {
			v, err := ParseVariant(e.Variant)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", e.ID, err)
			}
			variant = v
		}
		defs = append(defs, Definition{ID: e.ID, Trigger: c, Variant: variant})
	}
	return NewRegistry(defs...)
}

// MarshalKeyMap is the inverse of ParseKeyMap.
func MarshalKeyMap(r *Registry) ([]byte, error) {
	var f keyMapFile
	for _, d := range r.All() {
		f.Keys = append(f.Keys, keyMapEntry{
			ID:      d.ID,
			Trigger: string(d.Trigger),
			Variant: d.Variant.String(),
		})
	}
	return yaml.Marshal(f)
}
