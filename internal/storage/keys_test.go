package storage

import (
	"strings"
	"testing"
)

func TestObjectKeyPreservesExtension(t *testing.T) {
	key := ObjectKey("Photo.JPG")
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key = %q, want lowercase .jpg suffix", key)
	}

	if key := ObjectKey("noext"); strings.Contains(key, ".") {
		t.Fatalf("key = %q, want no extension", key)
	}
}

func TestObjectKeyCollisionFree(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := ObjectKey("same.png")
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true
	}
}
