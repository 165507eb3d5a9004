package store_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PandasDrive/M2T/pkg/internal/store"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

func newStore(t *testing.T, options ...types.Option[types.ArtifactStore]) types.ArtifactStore {
	t.Helper()
	opts := append([]types.Option[types.ArtifactStore]{store.WithDataDir(t.TempDir())}, options...)
	return store.NewArtifactStore(context.Background(), opts...)
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	s := newStore(t)
	payload := []byte("RIFF pretend audio")

	stored, err := s.Save(types.ArtifactUpload, "recording.wav", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(stored, "_recording.wav") {
		t.Fatalf("stored name should keep the sanitized base, got %q", stored)
	}
	if stored == "recording.wav" {
		t.Fatalf("stored name must be prefixed for uniqueness")
	}

	rc, err := s.Open(types.ArtifactUpload, stored)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("artifact content mismatch: %q", got)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s := newStore(t)
	first, err := s.Save(types.ArtifactGenerated, "tone.wav", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	second, err := s.Save(types.ArtifactGenerated, "tone.wav", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if first == second {
		t.Fatalf("identical suggestions must store under distinct names")
	}
}

func TestSaveSanitizesHostileNames(t *testing.T) {
	s := newStore(t)

	cases := []struct {
		suggested string
		wantBase  string
	}{
		{"../../../etc/passwd.wav", "passwd.wav"},
		{`C:\Users\op\desk top.wav`, "desk_top.wav"},
		{"weird name!!.wav", "weird_name__.wav"},
	}
	for _, tc := range cases {
		stored, err := s.Save(types.ArtifactUpload, tc.suggested, strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save(%q) failed: %v", tc.suggested, err)
		}
		if strings.ContainsAny(stored, `/\`) {
			t.Fatalf("stored name %q leaks separators", stored)
		}
		if !strings.HasSuffix(stored, "_"+tc.wantBase) {
			t.Fatalf("Save(%q) stored %q, want suffix %q", tc.suggested, stored, "_"+tc.wantBase)
		}

		path, err := s.Path(types.ArtifactUpload, stored)
		if err != nil {
			t.Fatalf("Path failed: %v", err)
		}
		if filepath.Base(filepath.Dir(path)) != "uploads" {
			t.Fatalf("artifact landed outside the uploads dir: %q", path)
		}
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	s := newStore(t)
	if _, err := s.Save(types.ArtifactUpload, "clip.mp3", strings.NewReader("x")); !errors.Is(err, types.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := s.Save(types.ArtifactUpload, "noextension", strings.NewReader("x")); !errors.Is(err, types.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for missing extension, got %v", err)
	}
}

func TestSaveHonorsCustomExtensions(t *testing.T) {
	s := newStore(t, store.WithAllowedExtensions(".wav", ".PCM"))
	if _, err := s.Save(types.ArtifactUpload, "raw.pcm", strings.NewReader("x")); err != nil {
		t.Fatalf("allowlisted extension rejected: %v", err)
	}
}

func TestSaveEnforcesSizeCap(t *testing.T) {
	dir := t.TempDir()
	s := store.NewArtifactStore(
		context.Background(),
		store.WithDataDir(dir),
		store.WithMaxArtifactSize(10),
	)

	if _, err := s.Save(types.ArtifactUpload, "big.wav", strings.NewReader("0123456789X")); !errors.Is(err, types.ErrArtifactTooLarge) {
		t.Fatalf("expected ErrArtifactTooLarge, got %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("reading uploads dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("oversized artifact must not persist, found %d entries", len(entries))
	}

	// Exactly at the cap is allowed.
	if _, err := s.Save(types.ArtifactUpload, "fits.wav", strings.NewReader("0123456789")); err != nil {
		t.Fatalf("artifact at the cap rejected: %v", err)
	}
}

func TestSaveRejectsUnknownKind(t *testing.T) {
	s := newStore(t)
	if _, err := s.Save(types.ArtifactKind("secrets"), "x.wav", strings.NewReader("x")); !errors.Is(err, types.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestOpenMissingArtifact(t *testing.T) {
	s := newStore(t)
	if _, err := s.Open(types.ArtifactUpload, "nope.wav"); !errors.Is(err, types.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
	if _, err := s.Path(types.ArtifactGenerated, "nope.wav"); !errors.Is(err, types.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound from Path, got %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newStore(t)
	for _, name := range []string{"../uploads/x.wav", "a/b.wav", "..", ""} {
		if _, err := s.Open(types.ArtifactUpload, name); !errors.Is(err, types.ErrArtifactNotFound) {
			t.Fatalf("Open(%q): expected ErrArtifactNotFound, got %v", name, err)
		}
	}
}

func TestCategoriesAreSeparate(t *testing.T) {
	s := newStore(t)
	up, err := s.Save(types.ArtifactUpload, "same.wav", strings.NewReader("upload"))
	if err != nil {
		t.Fatalf("Save upload failed: %v", err)
	}
	gen, err := s.Save(types.ArtifactGenerated, "same.wav", strings.NewReader("generated"))
	if err != nil {
		t.Fatalf("Save generated failed: %v", err)
	}

	if _, err := s.Open(types.ArtifactGenerated, up); !errors.Is(err, types.ErrArtifactNotFound) {
		t.Fatalf("upload leaked into generated: %v", err)
	}
	if _, err := s.Open(types.ArtifactUpload, gen); !errors.Is(err, types.ErrArtifactNotFound) {
		t.Fatalf("generated leaked into uploads: %v", err)
	}
}
