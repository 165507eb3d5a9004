package decoder

import (
	"fmt"
	"math"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// snrCapDB bounds the reported SNR. A clean synthetic recording has a noise
// floor of exactly zero, which would otherwise report +Inf.
const snrCapDB = 99.0

func validateParameters(params types.DecodingParameters) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"frequency", params.Frequency},
		{"threshold_factor", params.ThresholdFactor},
		{"wpm", params.WPM},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%s must be finite: %w", c.name, types.ErrInvalidParameter)
		}
		if c.value < 0 {
			return fmt.Errorf("%s must not be negative: %w", c.name, types.ErrInvalidParameter)
		}
	}
	return nil
}

// emptyResult is the no-keying outcome: empty text, no events, and whatever
// the caller pinned down carried through. Parameters that were estimated
// before the signal turned out to be silent are reported too.
func (d *Decoder) emptyResult(params types.DecodingParameters, freq, factor float64, runs []types.Run, duration float64) *types.DecodingResult {
	return &types.DecodingResult{
		FullText:        "",
		Events:          []types.DecodedEvent{},
		WPM:             params.WPM,
		Frequency:       roundTenth(freq),
		ThresholdFactor: factor,
		AvgSNR:          0,
		BinarySignal:    binaryTrace(runs, duration, d.traceBuckets),
	}
}

// computeSNR reports the mean on-power over mean off-power of the envelope
// in decibels, clamped to [0, snrCapDB]. Samples inside spans whose state
// was overruled by the short-run merge are excluded so ripple does not count
// as noise.
func computeSNR(env types.Envelope, runs []types.Run, flipped []types.Run) float64 {
	if len(env.Values) == 0 || env.Rate <= 0 || len(runs) == 0 {
		return 0
	}

	excluded := make([]bool, len(env.Values))
	for _, span := range flipped {
		from := int(span.StartTime * env.Rate)
		to := int(math.Ceil(span.EndTime * env.Rate))
		if from < 0 {
			from = 0
		}
		for i := from; i < to && i < len(excluded); i++ {
			excluded[i] = true
		}
	}

	dt := 1.0 / env.Rate
	var signalPower, noisePower float64
	var signalCount, noiseCount int

	runIdx := 0
	for i, v := range env.Values {
		if excluded[i] {
			continue
		}
		t := (float64(i) + 0.5) * dt
		for runIdx < len(runs)-1 && t >= runs[runIdx].EndTime {
			runIdx++
		}
		if runs[runIdx].On {
			signalPower += v * v
			signalCount++
		} else {
			noisePower += v * v
			noiseCount++
		}
	}

	if signalCount == 0 {
		return 0
	}
	meanSignal := signalPower / float64(signalCount)
	if noiseCount == 0 {
		return snrCapDB
	}
	meanNoise := noisePower / float64(noiseCount)
	if meanNoise <= 0 {
		return snrCapDB
	}

	snr := 10 * math.Log10(meanSignal/meanNoise)
	if snr < 0 {
		return 0
	}
	if snr > snrCapDB {
		return snrCapDB
	}
	return snr
}

// binaryTrace renders the runs into a fixed number of buckets for cheap
// client-side plotting. A bucket is 1 when keyed time covers at least half
// of it.
func binaryTrace(runs []types.Run, duration float64, buckets int) []int {
	if buckets <= 0 || duration <= 0 {
		return []int{}
	}
	out := make([]int, buckets)
	if len(runs) == 0 {
		return out
	}

	bucketWidth := duration / float64(buckets)
	for b := range out {
		bucketStart := float64(b) * bucketWidth
		bucketEnd := bucketStart + bucketWidth
		onTime := 0.0
		for _, r := range runs {
			if r.StartTime >= bucketEnd {
				break
			}
			if !r.On {
				continue
			}
			overlap := math.Min(r.EndTime, bucketEnd) - math.Max(r.StartTime, bucketStart)
			if overlap > 0 {
				onTime += overlap
			}
		}
		if onTime*2 >= bucketWidth {
			out[b] = 1
		}
	}
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
