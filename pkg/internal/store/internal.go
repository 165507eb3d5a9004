package store

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

func validateKind(kind types.ArtifactKind) error {
	switch kind {
	case types.ArtifactUpload, types.ArtifactGenerated:
		return nil
	default:
		return fmt.Errorf("artifact kind %q: %w", kind, types.ErrInvalidParameter)
	}
}

// sanitizeName reduces a suggested filename to a safe base name: directory
// components are stripped (both separator styles, since uploads carry
// whatever the client OS uses) and anything outside a conservative character
// set becomes an underscore.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// resolve maps (kind, stored name) to an on-disk path, refusing anything
// that is not a plain file name inside the category directory.
func (s *ArtifactStore) resolve(kind types.ArtifactKind, name string) (string, error) {
	if err := validateKind(kind); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("artifact %q: %w", name, types.ErrArtifactNotFound)
	}
	return filepath.Join(s.dataDir, string(kind), name), nil
}
