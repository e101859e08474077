package keys_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hdxpiano/internal/keys"
)

const twoKeys = `
keys:
  - {id: C4, trigger: a, variant: white}
  - {id: Db4, trigger: w, variant: black}
`

func TestParseKeyMap(t *testing.T) {
	reg, err := keys.ParseKeyMap([]byte(twoKeys))
	if err != nil {
		t.Fatalf("ParseKeyMap: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}
	d, ok := reg.LookupByTrigger('w')
	if !ok || d.ID != "Db4" || d.Variant != keys.Black {
		t.Fatalf("LookupByTrigger('w') = %v, %v", d, ok)
	}
}

func TestParseKeyMapRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "keys: []", keys.ErrInvalidDefinition},
		{"long trigger", "keys: [{id: C4, trigger: ab}]", keys.ErrInvalidDefinition},
		{"bad variant", "keys: [{id: C4, trigger: a, variant: red}]", keys.ErrInvalidDefinition},
		{"dup trigger", "keys: [{id: C4, trigger: a}, {id: D4, trigger: a}]", keys.ErrDuplicateTrigger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := keys.ParseKeyMap([]byte(tt.src)); !errors.Is(err, tt.want) {
				t.Fatalf("ParseKeyMap error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKeyMapFileRoundTrip(t *testing.T) {
	data, err := keys.MarshalKeyMap(keys.Default())
	if err != nil {
		t.Fatalf("MarshalKeyMap: %v", err)
	}
	path := filepath.Join(t.TempDir(), "keys.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	reg, err := keys.LoadKeyMap(path)
	if err != nil {
		t.Fatalf("LoadKeyMap: %v", err)
	}
	want := keys.Default().All()
	got := reg.All()
	if len(got) != len(want) {
		t.Fatalf("loaded %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d = %v, want %v", i, got[i], want[i])
		}
	}
}
