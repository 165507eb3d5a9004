package types

import "context"

// Keyer renders text as a Morse tone-burst waveform: a fixed-frequency sine keyed
// on and off with the canonical 1:3 dot:dash and 1:3:7 gap ratios at a requested
// words-per-minute. Its output is decodable by a Decoder, making encode→decode
// round trips well-defined.
type Keyer interface {
	// Render produces the waveform for text at the given WPM. Characters without
	// a Morse encoding fail the whole render rather than being dropped silently.
	Render(ctx context.Context, text string, wpm float64) (AudioSignal, error)

	ConnectLogger(...Logger)

	GetComponentMetadata() ComponentMetadata

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	SetComponentMetadata(name string, id string)

	// SetFrequency sets the carrier tone in Hz.
	SetFrequency(hz float64)

	// SetSampleRate sets the output sample rate in Hz.
	SetSampleRate(hz float64)

	// SetAmplitude sets the peak tone amplitude, normally in (0, 1].
	SetAmplitude(a float64)

	// SetEdgeRamp sets the raised-cosine attack/release time, in seconds, applied
	// to each tone burst to avoid keying clicks.
	SetEdgeRamp(seconds float64)

	// SetPadding sets the leading and trailing silence, in seconds.
	SetPadding(lead, tail float64)
}
