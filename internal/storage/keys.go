package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey derives a collision-free storage key from an uploaded
// filename, preserving the extension so content types stay guessable.
func ObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}
