// utils_test.go

package utils_test

import (
	"strings"
	"testing"

	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

func TestGenerateUniqueHash(t *testing.T) {
	first := utils.GenerateUniqueHash()
	second := utils.GenerateUniqueHash()

	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if first == second {
		t.Fatalf("consecutive hashes should differ, both were %s", first)
	}
}

func TestGenerateSha256HashStable(t *testing.T) {
	a := utils.GenerateSha256Hash("hello")
	b := utils.GenerateSha256Hash("hello")
	c := utils.GenerateSha256Hash("world")

	if a != b {
		t.Fatalf("same input should hash identically: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("different inputs should not collide")
	}
}

func TestFingerprint(t *testing.T) {
	samples := []float64{0.0, 0.5, -0.5, 1.0}

	base := utils.Fingerprint(samples, 700, 1.0, 20)
	same := utils.Fingerprint([]float64{0.0, 0.5, -0.5, 1.0}, 700, 1.0, 20)
	if base != same {
		t.Fatalf("identical samples and parameters should fingerprint identically")
	}

	differentSample := utils.Fingerprint([]float64{0.0, 0.5, -0.5, 0.999}, 700, 1.0, 20)
	if base == differentSample {
		t.Fatalf("changing a sample should change the fingerprint")
	}

	differentParam := utils.Fingerprint(samples, 600, 1.0, 20)
	if base == differentParam {
		t.Fatalf("changing a parameter should change the fingerprint")
	}

	if len(base) != 64 || strings.ToLower(base) != base {
		t.Fatalf("fingerprint should be lowercase hex, got %q", base)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dest struct {
		Text string `json:"text"`
		WPM  int    `json:"wpm"`
	}
	if err := utils.DecodeJSON(strings.NewReader(`{"text":"sos","wpm":20}`), &dest); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if dest.Text != "sos" || dest.WPM != 20 {
		t.Fatalf("unexpected decode result: %+v", dest)
	}

	if err := utils.DecodeJSON(strings.NewReader(`{bad json`), &dest); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}
