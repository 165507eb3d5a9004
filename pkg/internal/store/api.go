package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Save streams r into the given category under a sanitized, UUID-prefixed
// name and returns the stored name. The suggested name only contributes its
// sanitized base and must carry an allowed extension.
func (s *ArtifactStore) Save(kind types.ArtifactKind, name string, r io.Reader) (string, error) {
	if err := validateKind(kind); err != nil {
		s.notifySaveRejected(kind, name, err)
		return "", err
	}

	clean := sanitizeName(name)
	ext := strings.ToLower(filepath.Ext(clean))
	if !utils.Contains(s.allowedExtensions, ext) {
		err := fmt.Errorf("extension %q: %w", ext, types.ErrUnsupportedFormat)
		s.notifySaveRejected(kind, name, err)
		return "", err
	}

	dir := filepath.Join(s.dataDir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.notifySaveRejected(kind, name, err)
		return "", err
	}

	stored := uuid.NewString() + "_" + clean
	target := filepath.Join(dir, stored)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.notifySaveRejected(kind, name, err)
		return "", err
	}

	src := r
	if s.maxArtifactSize > 0 {
		// One extra byte distinguishes "exactly at the cap" from "over it".
		src = io.LimitReader(r, s.maxArtifactSize+1)
	}
	written, err := io.Copy(f, src)
	if err != nil {
		f.Close()
		os.Remove(target)
		s.notifySaveRejected(kind, name, err)
		return "", err
	}
	if s.maxArtifactSize > 0 && written > s.maxArtifactSize {
		f.Close()
		os.Remove(target)
		err := fmt.Errorf("artifact exceeds %d bytes: %w", s.maxArtifactSize, types.ErrArtifactTooLarge)
		s.notifySaveRejected(kind, name, err)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		s.notifySaveRejected(kind, name, err)
		return "", err
	}

	s.notifySaveComplete(kind, stored, written)
	return stored, nil
}

// Open returns the named artifact for reading. Names that did not come from
// Save, including anything resembling a path, report ErrArtifactNotFound.
func (s *ArtifactStore) Open(kind types.ArtifactKind, name string) (io.ReadCloser, error) {
	target, err := s.resolve(kind, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact %q: %w", name, types.ErrArtifactNotFound)
		}
		return nil, err
	}
	return f, nil
}

// Path resolves the on-disk location of a stored artifact without opening it.
func (s *ArtifactStore) Path(kind types.ArtifactKind, name string) (string, error) {
	target, err := s.resolve(kind, name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("artifact %q: %w", name, types.ErrArtifactNotFound)
		}
		return "", err
	}
	return target, nil
}

// ConnectLogger registers loggers. Nil loggers are ignored.
func (s *ArtifactStore) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}

	// Compact in-place to drop nils without allocating.
	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}
	loggers = loggers[:n]

	s.loggersLock.Lock()
	s.loggers = append(s.loggers, loggers...)
	s.loggersLock.Unlock()

	atomic.AddInt32(&s.loggerCount, int32(n))

	s.NotifyLoggers(
		types.DebugLevel,
		"ConnectLogger",
		"component", s.componentMetadata,
		"event", "ConnectLogger",
		"result", "SUCCESS",
		"count", n,
	)
}

// GetComponentMetadata returns the component's metadata.
func (s *ArtifactStore) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// SetComponentMetadata overrides the component's name and ID.
func (s *ArtifactStore) SetComponentMetadata(name string, id string) {
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}

// SetDataDir sets the root directory under which category subdirectories
// live.
func (s *ArtifactStore) SetDataDir(dir string) {
	s.dataDir = dir
}

// SetMaxArtifactSize caps the byte size of any single stored artifact. Zero
// disables the cap.
func (s *ArtifactStore) SetMaxArtifactSize(bytes int64) {
	s.maxArtifactSize = bytes
}

// SetAllowedExtensions restricts stored names to the given extensions.
func (s *ArtifactStore) SetAllowedExtensions(exts ...string) {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		normalized = append(normalized, strings.ToLower(ext))
	}
	s.allowedExtensions = normalized
}
