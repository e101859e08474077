package assets

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hdxpiano/internal/keys"
	"hdxpiano/pkg/format"

	"golang.org/x/crypto/blake2b"
)

type Entry struct {
	Key    string `json:"key"`
	File   string `json:"file"`
	Size   int64  `json:"size"`
	Digest string `json:"blake2b"`
}

// Manifest pins the exact sample set a key table was checked against.
type Manifest struct {
	Kind        string  `json:"kind"`
	Version     string  `json:"version"`
	Ext         string  `json:"ext"`
	CreatedDate string  `json:"created_date,omitempty"`
	Entries     []Entry `json:"entries"`
}

// BuildManifest digests the sample of every key. A missing sample is an
// error: a manifest never describes an incomplete set.
func BuildManifest(reg *keys.Registry, dir, ext string) (Manifest, error) {
	m := Manifest{Kind: format.ManifestKind, Version: format.Version, Ext: ext}
	for _, k := range reg.All() {
		name := k.ID + ext
		size, sum, err := digestFile(filepath.Join(dir, name))
		if err != nil {
			return Manifest{}, fmt.Errorf("key %s: %w", k.ID, err)
		}
		m.Entries = append(m.Entries, Entry{Key: k.ID, File: name, Size: size, Digest: sum})
	}
	return m, nil
}

func digestFile(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return 0, "", err
	}
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Kind != format.ManifestKind {
		return m, fmt.Errorf("%s: not a piano manifest (kind %q)", path, m.Kind)
	}
	return m, nil
}

type Mismatch struct {
	Key    string `json:"key"`
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Verify re-digests dir against m.
func Verify(m Manifest, dir string) []Mismatch {
	var out []Mismatch
	for _, e := range m.Entries {
		size, sum, err := digestFile(filepath.Join(dir, e.File))
		switch {
		case err != nil:
			out = append(out, Mismatch{Key: e.Key, File: e.File, Reason: err.Error()})
		case size != e.Size:
			out = append(out, Mismatch{Key: e.Key, File: e.File, Reason: fmt.Sprintf("size %d, want %d", size, e.Size)})
		case sum != e.Digest:
			out = append(out, Mismatch{Key: e.Key, File: e.File, Reason: "digest changed"})
		}
	}
	return out
}
