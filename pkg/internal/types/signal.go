package types

// AudioSignal carries a finite mono recording: ordered real-valued samples at a fixed
// sample rate. Signals are owned by the caller and never mutated by the pipeline;
// every decode derives fresh intermediate data from them.
type AudioSignal struct {
	Samples    []float64 // Amplitude samples, typically normalized to [-1, 1].
	SampleRate float64   // Samples per second.
}

// Duration returns the signal length in seconds, or 0 for an empty or rateless signal.
func (s AudioSignal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRate
}

// Envelope is the smoothed amplitude-over-time trace of a band-passed signal,
// usually at a much lower effective rate than the source audio. Values are non-negative.
type Envelope struct {
	Values []float64 // Envelope magnitude samples.
	Rate   float64   // Effective samples per second.
}

// Duration returns the envelope length in seconds.
func (e Envelope) Duration() float64 {
	if e.Rate <= 0 {
		return 0
	}
	return float64(len(e.Values)) / e.Rate
}

// Run is a maximal interval of constant on/off classification. Runs are produced in
// time order, are contiguous (each run starts exactly where its predecessor ended),
// and together span the full signal duration.
type Run struct {
	On        bool    // True while the tone is keyed, false during silence.
	StartTime float64 // Seconds from signal start, inclusive.
	EndTime   float64 // Seconds from signal start, exclusive.
}

// Duration returns the run length in seconds.
func (r Run) Duration() float64 {
	return r.EndTime - r.StartTime
}

// RunClass tags a run with its Morse meaning once timing has been established.
type RunClass int

const (
	ClassDot      RunClass = iota // On-run shorter than two units.
	ClassDash                     // On-run of two units or longer.
	ClassIntraGap                 // Off-run inside a character, under two units.
	ClassCharGap                  // Off-run separating characters, two to five units.
	ClassWordGap                  // Off-run separating words, five units or longer.
)

// ClassifiedRun pairs a run with its symbol or gap classification.
type ClassifiedRun struct {
	Run
	Class RunClass
}

// TimingProfile captures the operating parameters inferred or supplied for a single
// decode: the keying unit, the equivalent words-per-minute, the carrier frequency,
// and the threshold factor that shaped the binarization. The profile is an immutable
// value threaded through the pipeline so concurrent decodes never interfere.
type TimingProfile struct {
	UnitSeconds     float64 `json:"unit_seconds"`
	WPM             float64 `json:"wpm"`
	Frequency       float64 `json:"frequency"`
	ThresholdFactor float64 `json:"threshold_factor"`
}

// DecodedEvent is one timestamped character in the decoded timeline. Events are
// ordered by start time and pairwise disjoint; word separators appear as a literal
// space character with an empty Morse code.
type DecodedEvent struct {
	Character string  `json:"character"`
	MorseCode string  `json:"morse_code"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// DecodingParameters are the per-call tuning knobs for a decode. Zero values mean
// "not supplied": frequency and WPM fall back to estimation, the threshold factor
// to 1.0. Negative or non-finite values are rejected before the pipeline runs.
type DecodingParameters struct {
	Frequency       float64 `json:"frequency,omitempty"`        // Carrier override in Hz; 0 = estimate from spectrum.
	ThresholdFactor float64 `json:"threshold_factor,omitempty"` // Multiplier on the reference level; 0 = default 1.0.
	WPM             float64 `json:"wpm,omitempty"`              // Keying speed override; 0 = estimate from run durations.
}

// DecodingResult bundles everything one decode produces. It is constructed fresh per
// call and never mutated afterward; identical signal and parameters always yield an
// identical result.
type DecodingResult struct {
	FullText        string         `json:"full_text"`
	Events          []DecodedEvent `json:"events"`
	WPM             float64        `json:"wpm"`
	Frequency       float64        `json:"frequency"`
	ThresholdFactor float64        `json:"threshold_factor"`
	AvgSNR          float64        `json:"avg_snr"`
	BinarySignal    []int          `json:"binary_signal_data"`
	Spectrogram     [][]float64    `json:"spectrogram_data,omitempty"`
}
