package keygen

import (
	"strings"
	"testing"
)

func TestNewKeyLength(t *testing.T) {
	key, err := New().NewKey()
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	if len(key) != DefaultLength {
		t.Errorf("Expected length %d, got %d (%q)", DefaultLength, len(key), key)
	}

	key, err = New().WithLength(12).NewKey()
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	if len(key) != 12 {
		t.Errorf("Expected length 12, got %d (%q)", len(key), key)
	}
}

func TestNewKeyAlphabet(t *testing.T) {
	g := New()
	for i := 0; i < 100; i++ {
		key, err := g.NewKey()
		if err != nil {
			t.Fatalf("NewKey failed: %v", err)
		}
		for _, c := range key {
			if !strings.ContainsRune(Alphabet, c) {
				t.Fatalf("Key %q contains %q, not in alphabet", key, c)
			}
		}
	}
}

func TestNewKeyVaries(t *testing.T) {
	g := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := g.NewKey()
		if err != nil {
			t.Fatalf("NewKey failed: %v", err)
		}
		seen[key] = true
	}

	// 100 draws from a 48^6 space should essentially never repeat; a
	// handful of collisions would already signal a broken source.
	if len(seen) < 95 {
		t.Errorf("Expected near-unique keys, got %d distinct out of 100", len(seen))
	}
}

func TestAlphabetExcludesAmbiguous(t *testing.T) {
	for _, c := range "01OIl9" {
		if strings.ContainsRune(Alphabet, c) {
			t.Errorf("Alphabet contains ambiguous character %q", c)
		}
	}
}
