// Package segmenter turns an amplitude envelope into contiguous on/off runs.
// A percentile-based reference level makes the threshold robust to recording
// gain, and a minimum-duration merge removes ripple and dropouts shorter
// than any plausible keying element.
package segmenter

import (
	"sort"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"gonum.org/v1/gonum/stat"
)

const (
	peakQuantile  = 0.95
	floorQuantile = 0.10
	refWeight     = 0.45

	// contrastRatio guards against envelopes with no keying at all. A
	// flat envelope, whether silence, steady noise, or an unbroken tone,
	// has no on/off structure worth segmenting.
	contrastRatio = 3.0
	silenceFloor  = 1e-6
)

// Threshold derives the on/off decision level from the envelope statistics.
// The reference sits between the noise floor (10th percentile) and the tone
// peak (95th percentile); factor scales it. ok is false when the envelope
// lacks the contrast of a keyed signal, in which case every sample should be
// treated as off.
func Threshold(values []float64, factor float64) (threshold float64, ok bool) {
	if len(values) == 0 || factor <= 0 {
		return 0, false
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	peak := stat.Quantile(peakQuantile, stat.Empirical, sorted, nil)
	floor := stat.Quantile(floorQuantile, stat.Empirical, sorted, nil)

	if peak <= silenceFloor || peak < contrastRatio*floor {
		return 0, false
	}

	ref := floor + refWeight*(peak-floor)
	return factor * ref, true
}

// Segment run-length encodes the envelope against the threshold. Runs are
// contiguous and gapless, the first starts at zero, and the last is
// stretched to exactly duration so the decimated grid never leaves a
// sub-block tail uncovered. A sample is on when its value is at or above
// the threshold.
func Segment(env types.Envelope, threshold float64, duration float64) []types.Run {
	if duration <= 0 {
		return nil
	}
	if len(env.Values) == 0 || env.Rate <= 0 {
		return []types.Run{{On: false, StartTime: 0, EndTime: duration}}
	}

	dt := 1.0 / env.Rate
	runs := make([]types.Run, 0, 16)
	current := types.Run{On: env.Values[0] >= threshold, StartTime: 0}
	for i := 1; i < len(env.Values); i++ {
		on := env.Values[i] >= threshold
		if on == current.On {
			continue
		}
		current.EndTime = float64(i) * dt
		runs = append(runs, current)
		current = types.Run{On: on, StartTime: current.EndTime}
	}
	current.EndTime = duration
	runs = append(runs, current)
	return runs
}

// MergeShortRuns folds every run shorter than minDuration into its
// neighbors, shortest first, until none remain. The second return value
// lists the original short runs whose state was overruled; callers that
// compute signal statistics exclude those spans. Contiguity and state
// alternation are preserved. A lone run is never merged away even when
// short.
func MergeShortRuns(runs []types.Run, minDuration float64) (merged []types.Run, flipped []types.Run) {
	if len(runs) == 0 || minDuration <= 0 {
		return runs, nil
	}

	merged = make([]types.Run, len(runs))
	copy(merged, runs)

	for len(merged) > 1 {
		idx := -1
		for i, r := range merged {
			if r.Duration() >= minDuration {
				continue
			}
			if idx == -1 || r.Duration() < merged[idx].Duration() {
				idx = i
			}
		}
		if idx == -1 {
			break
		}

		flipped = append(flipped, merged[idx])
		switch {
		case idx == 0:
			merged[1].StartTime = merged[0].StartTime
			merged = merged[1:]
		case idx == len(merged)-1:
			merged[idx-1].EndTime = merged[idx].EndTime
			merged = merged[:idx]
		default:
			// Flipping the middle run unifies three runs into one.
			merged[idx-1].EndTime = merged[idx+1].EndTime
			merged = append(merged[:idx], merged[idx+2:]...)
		}
	}
	return merged, flipped
}
