package wavcodec_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/wavcodec"
)

// buildWAV assembles a minimal RIFF/WAVE byte stream around the given PCM
// payload, optionally inserting extra chunks between fmt and data.
func buildWAV(format, channels, bits int, sampleRate uint32, payload []byte, extra ...[]byte) []byte {
	var b bytes.Buffer

	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:], uint16(format))
	binary.LittleEndian.PutUint16(fmtChunk[2:], uint16(channels))
	binary.LittleEndian.PutUint32(fmtChunk[4:], sampleRate)
	binary.LittleEndian.PutUint32(fmtChunk[8:], sampleRate*uint32(channels)*uint32(bits/8))
	binary.LittleEndian.PutUint16(fmtChunk[12:], uint16(channels*bits/8))
	binary.LittleEndian.PutUint16(fmtChunk[14:], uint16(bits))

	var inner bytes.Buffer
	writeChunk := func(id string, body []byte) {
		inner.WriteString(id)
		size := make([]byte, 4)
		binary.LittleEndian.PutUint32(size, uint32(len(body)))
		inner.Write(size)
		inner.Write(body)
		if len(body)%2 == 1 {
			inner.WriteByte(0)
		}
	}

	writeChunk("fmt ", fmtChunk)
	for i := 0; i+1 < len(extra); i += 2 {
		writeChunk(string(extra[i]), extra[i+1])
	}
	writeChunk("data", payload)

	b.WriteString("RIFF")
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, uint32(4+inner.Len()))
	b.Write(size)
	b.WriteString("WAVE")
	b.Write(inner.Bytes())
	return b.Bytes()
}

func pcm16(values ...int16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := types.AudioSignal{
		Samples:    []float64{0, 0.25, -0.25, 0.99, -0.99, 0.5},
		SampleRate: 8000,
	}

	var buf bytes.Buffer
	if err := wavcodec.Encode(&buf, in); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if buf.Len() != 44+len(in.Samples)*2 {
		t.Fatalf("expected %d bytes, got %d", 44+len(in.Samples)*2, buf.Len())
	}

	out, err := wavcodec.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.SampleRate != in.SampleRate {
		t.Fatalf("sample rate %v, want %v", out.SampleRate, in.SampleRate)
	}
	if len(out.Samples) != len(in.Samples) {
		t.Fatalf("%d samples, want %d", len(out.Samples), len(in.Samples))
	}
	for i := range in.Samples {
		if math.Abs(out.Samples[i]-in.Samples[i]) > 1.0/32767 {
			t.Fatalf("sample %d: %v, want %v", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestEncodeClampsOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	err := wavcodec.Encode(&buf, types.AudioSignal{
		Samples:    []float64{1.5, -1.5},
		SampleRate: 8000,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := wavcodec.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if math.Abs(out.Samples[0]-1.0) > 1e-3 || math.Abs(out.Samples[1]+1.0) > 1e-3 {
		t.Fatalf("expected clamped full-scale samples, got %v", out.Samples)
	}
}

func TestEncodeRejectsBadSampleRate(t *testing.T) {
	for _, rate := range []float64{0, -8000, math.NaN(), math.Inf(1)} {
		var buf bytes.Buffer
		err := wavcodec.Encode(&buf, types.AudioSignal{Samples: []float64{0}, SampleRate: rate})
		if !errors.Is(err, types.ErrInvalidParameter) {
			t.Fatalf("rate %v: expected ErrInvalidParameter, got %v", rate, err)
		}
	}
}

func TestDecodeAveragesStereo(t *testing.T) {
	payload := pcm16(16384, -16384, 8192, 8192)
	raw := buildWAV(1, 2, 16, 8000, payload)

	signal, err := wavcodec.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(signal.Samples) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(signal.Samples))
	}
	if math.Abs(signal.Samples[0]) > 1e-9 {
		t.Fatalf("opposed channels should average to zero, got %v", signal.Samples[0])
	}
	if math.Abs(signal.Samples[1]-0.25) > 1e-9 {
		t.Fatalf("expected 0.25, got %v", signal.Samples[1])
	}
}

func TestDecodeEightBit(t *testing.T) {
	raw := buildWAV(1, 1, 8, 8000, []byte{128, 255, 0})
	signal, err := wavcodec.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []float64{0, 127.0 / 128.0, -1}
	for i, w := range want {
		if math.Abs(signal.Samples[i]-w) > 1e-9 {
			t.Fatalf("sample %d: %v, want %v", i, signal.Samples[i], w)
		}
	}
}

func TestDecodeSkipsForeignChunks(t *testing.T) {
	payload := pcm16(100, 200, 300)
	raw := buildWAV(1, 1, 16, 44100, payload,
		[]byte("LIST"), []byte("INFOsome metadata"),
		[]byte("junk"), []byte{1, 2, 3}, // odd size exercises pad alignment
	)

	signal, err := wavcodec.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if signal.SampleRate != 44100 || len(signal.Samples) != 3 {
		t.Fatalf("unexpected result: rate %v, %d samples", signal.SampleRate, len(signal.Samples))
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("not audio at all"),
		[]byte("RIFF\x00\x00\x00\x00AIFF"),
		buildWAV(1, 1, 16, 8000, nil)[:20], // truncated before any chunk completes
	}
	for i, raw := range cases {
		if _, err := wavcodec.Decode(bytes.NewReader(raw)); !errors.Is(err, types.ErrUnreadableAudio) {
			t.Fatalf("case %d: expected ErrUnreadableAudio, got %v", i, err)
		}
	}
}

func TestDecodeRejectsUnsupportedEncodings(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"float PCM", buildWAV(3, 1, 32, 8000, make([]byte, 8))},
		{"24-bit", buildWAV(1, 1, 24, 8000, make([]byte, 6))},
		{"zero channels", buildWAV(1, 0, 16, 8000, nil)},
	}
	for _, tc := range cases {
		if _, err := wavcodec.Decode(bytes.NewReader(tc.raw)); !errors.Is(err, types.ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", tc.name, err)
		}
	}
}

func TestDecodeEmptyData(t *testing.T) {
	raw := buildWAV(1, 1, 16, 8000, nil)
	signal, err := wavcodec.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(signal.Samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(signal.Samples))
	}
}
