// Package timing infers the keying speed of a segmented signal and labels
// each run as a dot, dash, or one of the three gap kinds. Durations follow
// the standard element grid: a dash is three dot units, the gap inside a
// character is one unit, between characters three units, between words seven.
package timing

import (
	"math"
	"sort"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"gonum.org/v1/gonum/stat"
)

// secondsPerUnitAtOneWPM follows the PARIS convention: at one word per
// minute a dot lasts 1.2 seconds.
const secondsPerUnitAtOneWPM = 1.2

const (
	dashBoundaryUnits = 2.0
	wordBoundaryUnits = 5.0

	// clusterDistinctRatio decides whether the two duration clusters are
	// honestly dots and dashes. A clean signal has a 3:1 ratio; jitter
	// narrows it.
	clusterDistinctRatio = 1.6
	kmeansIterations     = 32
)

// UnitFromWPM converts words per minute to the dot duration in seconds.
func UnitFromWPM(wpm float64) float64 {
	return secondsPerUnitAtOneWPM / wpm
}

// WPMFromUnit converts a dot duration in seconds to words per minute.
func WPMFromUnit(unit float64) float64 {
	return secondsPerUnitAtOneWPM / unit
}

// EstimateUnit infers the dot duration from the on runs. A two-cluster
// split separates dots from dashes; the unit is the median of the short
// cluster. When every element shares one length the gaps decide the
// reading: gaps clearly shorter than the elements mean the elements are
// dashes, anything else reads as dots. ok is false when the signal has no
// on runs at all.
func EstimateUnit(runs []types.Run) (unit float64, ok bool) {
	var on []float64
	first, last := -1, -1
	for i, r := range runs {
		if r.On {
			if first == -1 {
				first = i
			}
			last = i
			on = append(on, r.Duration())
		}
	}
	if len(on) == 0 {
		return 0, false
	}

	var gaps []float64
	for i, r := range runs {
		if !r.On && i > first && i < last {
			gaps = append(gaps, r.Duration())
		}
	}

	if short, long, split := kmeans2(on); split && long >= clusterDistinctRatio*short {
		members := make([]float64, 0, len(on))
		for _, d := range on {
			if math.Abs(d-short) <= math.Abs(d-long) {
				members = append(members, d)
			}
		}
		if len(members) > 0 {
			return median(members), true
		}
		return median(on), true
	}

	// Single element length. A lone burst with nothing around it reads as
	// a dash; a train with gaps much shorter than the elements is a dash
	// train with one-unit pauses; equal elements and gaps read as dots,
	// which keeps an all-dot character decodable.
	m := median(on)
	if len(gaps) == 0 {
		return m / 3, true
	}
	if median(gaps) < m/1.5 {
		return m / 3, true
	}
	return m, true
}

// Classify labels every run against the unit. On runs shorter than two
// units are dots, longer ones dashes. Off runs split at two and five units
// into element, character, and word gaps.
func Classify(runs []types.Run, unit float64) []types.ClassifiedRun {
	if unit <= 0 {
		return nil
	}
	out := make([]types.ClassifiedRun, 0, len(runs))
	for _, r := range runs {
		var class types.RunClass
		d := r.Duration()
		if r.On {
			if d < dashBoundaryUnits*unit {
				class = types.ClassDot
			} else {
				class = types.ClassDash
			}
		} else {
			switch {
			case d < dashBoundaryUnits*unit:
				class = types.ClassIntraGap
			case d < wordBoundaryUnits*unit:
				class = types.ClassCharGap
			default:
				class = types.ClassWordGap
			}
		}
		out = append(out, types.ClassifiedRun{Run: r, Class: class})
	}
	return out
}

// kmeans2 runs Lloyd's algorithm with two centroids seeded at the extremes.
// split is false when the input cannot support two clusters.
func kmeans2(durations []float64) (short, long float64, split bool) {
	lo, hi := durations[0], durations[0]
	for _, d := range durations {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	if len(durations) < 2 || hi-lo < 1e-12 {
		return lo, hi, false
	}

	c1, c2 := lo, hi
	for iter := 0; iter < kmeansIterations; iter++ {
		var sum1, sum2 float64
		var n1, n2 int
		for _, d := range durations {
			if math.Abs(d-c1) <= math.Abs(d-c2) {
				sum1 += d
				n1++
			} else {
				sum2 += d
				n2++
			}
		}
		next1, next2 := c1, c2
		if n1 > 0 {
			next1 = sum1 / float64(n1)
		}
		if n2 > 0 {
			next2 = sum2 / float64(n2)
		}
		if math.Abs(next1-c1) < 1e-12 && math.Abs(next2-c2) < 1e-12 {
			c1, c2 = next1, next2
			break
		}
		c1, c2 = next1, next2
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	return c1, c2, true
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
