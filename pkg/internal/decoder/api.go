package decoder

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/envelope"
	"github.com/PandasDrive/M2T/pkg/internal/morse"
	"github.com/PandasDrive/M2T/pkg/internal/segmenter"
	"github.com/PandasDrive/M2T/pkg/internal/spectral"
	"github.com/PandasDrive/M2T/pkg/internal/timing"
	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Decode analyzes the signal and returns the recovered text with per-character
// events and diagnostics. Parameters left at zero are derived from the signal:
// the carrier from the spectrum, the keying speed from element durations, and
// the threshold factor defaults to one. A recording with no decodable keying
// yields an empty result rather than an error; malformed parameters and
// over-long signals yield an error and no result.
func (d *Decoder) Decode(ctx context.Context, signal types.AudioSignal, params types.DecodingParameters) (*types.DecodingResult, error) {
	if err := validateParameters(params); err != nil {
		d.notifyDecodeRejected(err)
		return nil, err
	}
	if signal.SampleRate <= 0 || math.IsNaN(signal.SampleRate) || math.IsInf(signal.SampleRate, 0) {
		err := fmt.Errorf("sample rate %v: %w", signal.SampleRate, types.ErrInvalidParameter)
		d.notifyDecodeRejected(err)
		return nil, err
	}

	duration := signal.Duration()
	if d.maxSignalDuration > 0 && duration > d.maxSignalDuration {
		err := fmt.Errorf("signal of %.1fs exceeds limit of %.1fs: %w",
			duration, d.maxSignalDuration, types.ErrSignalTooLong)
		d.notifyDecodeRejected(err)
		return nil, err
	}

	factor := params.ThresholdFactor
	if factor == 0 {
		factor = defaultThresholdFactor
	}

	if len(signal.Samples) == 0 {
		return d.emptyResult(params, params.Frequency, factor, nil, 0), nil
	}

	var cacheKey string
	if cache := d.getResultCache(); cache != nil {
		cacheKey = utils.Fingerprint(signal.Samples,
			signal.SampleRate, params.Frequency, params.ThresholdFactor, params.WPM)
		if result, found := cache.Lookup(cacheKey); found {
			d.notifyCacheHit(cacheKey)
			return result, nil
		}
	}

	d.notifyDecodeStart(signal, params)

	freq := params.Frequency
	if freq == 0 {
		estimated, found := spectral.EstimateCarrier(
			signal.Samples, signal.SampleRate, d.carrierLow, d.carrierHigh)
		if !found {
			result := d.emptyResult(params, 0, factor, nil, duration)
			d.notifyDecodeComplete(result, true)
			return result, nil
		}
		freq = estimated
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env := envelope.Extract(signal.Samples, signal.SampleRate, freq, d.bandwidth, d.envelopeRate)

	threshold, usable := segmenter.Threshold(env.Values, factor)
	if !usable {
		result := d.emptyResult(params, freq, factor, nil, duration)
		d.notifyDecodeComplete(result, true)
		return result, nil
	}

	runs := segmenter.Segment(env, threshold, duration)
	merged, flipped := segmenter.MergeShortRuns(runs, d.minRunDuration)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unit := 0.0
	if params.WPM > 0 {
		unit = timing.UnitFromWPM(params.WPM)
	} else {
		estimated, found := timing.EstimateUnit(merged)
		if !found {
			result := d.emptyResult(params, freq, factor, merged, duration)
			d.notifyDecodeComplete(result, true)
			return result, nil
		}
		unit = estimated
	}

	classified := timing.Classify(merged, unit)
	text, events := morse.DecodeRuns(classified)

	result := &types.DecodingResult{
		FullText:        text,
		Events:          events,
		WPM:             roundTenth(timing.WPMFromUnit(unit)),
		Frequency:       roundTenth(freq),
		ThresholdFactor: factor,
		AvgSNR:          computeSNR(env, merged, flipped),
		BinarySignal:    binaryTrace(merged, duration, d.traceBuckets),
	}
	if d.spectrogram {
		result.Spectrogram = spectral.Spectrogram(
			signal.Samples, signal.SampleRate, spectrogramMaxHz, spectrogramMaxFrames)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cache := d.getResultCache(); cache != nil && cacheKey != "" {
		if err := cache.Store(cacheKey, result); err != nil {
			d.notifyCacheStoreFailure(cacheKey, err)
		}
	}

	d.notifyDecodeComplete(result, false)
	return result, nil
}

// ConnectLogger registers loggers. Nil loggers are ignored.
func (d *Decoder) ConnectLogger(loggers ...types.Logger) {
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

	d.loggersLock.Lock()
	d.loggers = append(d.loggers, loggers...)
	d.loggersLock.Unlock()

	atomic.AddInt32(&d.loggerCount, int32(n))

	d.NotifyLoggers(
		types.DebugLevel,
		"ConnectLogger",
		"component", d.componentMetadata,
		"event", "ConnectLogger",
		"result", "SUCCESS",
		"count", n,
	)
}

// ConnectResultCache attaches a cache of completed results. Decode consults
// it before analyzing and stores into it after.
func (d *Decoder) ConnectResultCache(cache types.ResultCache) {
	d.cacheLock.Lock()
	d.resultCache = cache
	d.cacheLock.Unlock()

	if cache == nil {
		d.NotifyLoggers(
			types.DebugLevel,
			"ConnectResultCache",
			"component", d.componentMetadata,
			"event", "ConnectResultCache",
			"result", "SUCCESS",
			"resultCache", nil,
		)
		return
	}

	d.NotifyLoggers(
		types.DebugLevel,
		"ConnectResultCache",
		"component", d.componentMetadata,
		"event", "ConnectResultCache",
		"result", "SUCCESS",
		"resultCacheComponentMetadata", cache.GetComponentMetadata(),
	)
}

// GetComponentMetadata returns the component's metadata.
func (d *Decoder) GetComponentMetadata() types.ComponentMetadata {
	return d.componentMetadata
}

// SetComponentMetadata overrides the component's name and ID.
func (d *Decoder) SetComponentMetadata(name string, id string) {
	d.componentMetadata.Name = name
	d.componentMetadata.ID = id
}

// SetCarrierBand sets the search band for automatic carrier estimation.
func (d *Decoder) SetCarrierBand(lowHz, highHz float64) {
	d.carrierLow = lowHz
	d.carrierHigh = highHz
}

// SetBandwidth sets the bandpass width around the carrier in Hz.
func (d *Decoder) SetBandwidth(hz float64) {
	d.bandwidth = hz
}

// SetEnvelopeRate sets the envelope sampling rate in Hz.
func (d *Decoder) SetEnvelopeRate(hz float64) {
	d.envelopeRate = hz
}

// SetMinRunDuration sets the shortest run, in seconds, that survives
// segmentation.
func (d *Decoder) SetMinRunDuration(seconds float64) {
	d.minRunDuration = seconds
}

// SetTraceBuckets sets the length of the binary keying trace.
func (d *Decoder) SetTraceBuckets(n int) {
	d.traceBuckets = n
}

// SetMaxSignalDuration bounds the accepted signal length in seconds. Zero
// disables the guard.
func (d *Decoder) SetMaxSignalDuration(seconds float64) {
	d.maxSignalDuration = seconds
}

// SetSpectrogram toggles spectrogram generation on Decode.
func (d *Decoder) SetSpectrogram(enabled bool) {
	d.spectrogram = enabled
}

func (d *Decoder) getResultCache() types.ResultCache {
	d.cacheLock.Lock()
	defer d.cacheLock.Unlock()
	return d.resultCache
}
