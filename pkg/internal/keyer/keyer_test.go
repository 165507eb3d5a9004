package keyer_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/PandasDrive/M2T/pkg/internal/keyer"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

func render(t *testing.T, k types.Keyer, text string, wpm float64) types.AudioSignal {
	t.Helper()
	signal, err := k.Render(context.Background(), text, wpm)
	if err != nil {
		t.Fatalf("Render(%q) failed: %v", text, err)
	}
	return signal
}

func TestRenderTimingGrid(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	signal := render(t, k, "SOS", 20)

	if signal.SampleRate != 44100 {
		t.Fatalf("expected default sample rate 44100, got %v", signal.SampleRate)
	}

	// At 20 WPM the unit is 60 ms, 2646 samples. SOS keys 27 units:
	// 5 for each S, 11 for the O, and two 3-unit character gaps. Half a
	// second of padding sits on each end.
	const unitSamples = 2646
	want := 22050 + 27*unitSamples + 22050
	if len(signal.Samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(signal.Samples))
	}

	for i := 0; i < 22050; i++ {
		if signal.Samples[i] != 0 {
			t.Fatalf("lead padding should be silent, sample %d = %v", i, signal.Samples[i])
		}
	}
	for i := len(signal.Samples) - 22050; i < len(signal.Samples); i++ {
		if signal.Samples[i] != 0 {
			t.Fatalf("tail padding should be silent, sample %d = %v", i, signal.Samples[i])
		}
	}

	peak := 0.0
	for _, s := range signal.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak > 0.8+1e-9 {
		t.Fatalf("peak %v exceeds the configured amplitude", peak)
	}
	if peak < 0.75 {
		t.Fatalf("bursts should reach near full amplitude, peak %v", peak)
	}
}

func TestRenderSoftensEdges(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	signal := render(t, k, "T", 20)

	// Within the first millisecond of the burst the raised-cosine ramp
	// keeps the waveform well under full swing.
	burstStart := 22050
	for i := burstStart; i < burstStart+44; i++ {
		if math.Abs(signal.Samples[i]) > 0.3 {
			t.Fatalf("sample %d = %v, burst edge should be ramped", i, signal.Samples[i])
		}
	}
}

func TestRenderSpacesCollapse(t *testing.T) {
	k := keyer.NewKeyer(context.Background())

	oneSpace := render(t, k, "A B", 20)
	twoSpaces := render(t, k, "A  B", 20)
	if len(oneSpace.Samples) != len(twoSpaces.Samples) {
		t.Fatalf("consecutive spaces must collapse: %d vs %d samples",
			len(oneSpace.Samples), len(twoSpaces.Samples))
	}

	// A word gap replaces the character gap, adding four units.
	const unitSamples = 2646
	joined := render(t, k, "AB", 20)
	if len(oneSpace.Samples)-len(joined.Samples) != 4*unitSamples {
		t.Fatalf("word gap should add four units over the character gap, got %d extra samples",
			len(oneSpace.Samples)-len(joined.Samples))
	}
}

func TestRenderIgnoresOuterSpaces(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	padded := render(t, k, "  E ", 20)
	bare := render(t, k, "E", 20)
	if !reflect.DeepEqual(padded.Samples, bare.Samples) {
		t.Fatalf("leading and trailing spaces must not key gaps: %d vs %d samples",
			len(padded.Samples), len(bare.Samples))
	}
}

func TestRenderLowercase(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	lower := render(t, k, "sos", 20)
	upper := render(t, k, "SOS", 20)
	if !reflect.DeepEqual(lower.Samples, upper.Samples) {
		t.Fatalf("case must not change the waveform")
	}
}

func TestRenderEmptyText(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	signal := render(t, k, "", 20)
	if len(signal.Samples) != 44100 {
		t.Fatalf("empty text should render padding only, got %d samples", len(signal.Samples))
	}
	for i, s := range signal.Samples {
		if s != 0 {
			t.Fatalf("sample %d = %v, expected pure silence", i, s)
		}
	}
}

func TestRenderUnmappableCharacter(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	_, err := k.Render(context.Background(), "HI~", 20)
	if !errors.Is(err, types.ErrUnmappableText) {
		t.Fatalf("expected ErrUnmappableText, got %v", err)
	}
	if !strings.Contains(err.Error(), "'~'") {
		t.Fatalf("error should name the offending character: %v", err)
	}
}

func TestRenderRejectsBadWPM(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	for _, wpm := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := k.Render(context.Background(), "E", wpm); !errors.Is(err, types.ErrInvalidParameter) {
			t.Fatalf("wpm %v: expected ErrInvalidParameter, got %v", wpm, err)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	first := render(t, k, "HELLO WORLD", 15)
	second := render(t, k, "HELLO WORLD", 15)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input must render identically")
	}
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	k := keyer.NewKeyer(context.Background())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := k.Render(ctx, "SOS", 20); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderWithOptions(t *testing.T) {
	k := keyer.NewKeyer(
		context.Background(),
		keyer.WithFrequency(600),
		keyer.WithSampleRate(8000),
		keyer.WithAmplitude(0.5),
		keyer.WithPadding(0.1, 0.2),
	)
	signal := render(t, k, "S", 20)

	// 0.1s lead + five 60 ms units + 0.2s tail at 8 kHz.
	want := 800 + 5*480 + 1600
	if len(signal.Samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(signal.Samples))
	}
	peak := 0.0
	for _, s := range signal.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak > 0.5+1e-9 {
		t.Fatalf("peak %v exceeds the configured amplitude", peak)
	}
}
