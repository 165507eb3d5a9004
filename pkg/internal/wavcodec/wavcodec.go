// Package wavcodec reads and writes RIFF/WAVE containers. Decoding accepts
// 8- and 16-bit PCM at any channel count and averages multichannel audio
// down to mono; encoding always emits 16-bit PCM mono.
package wavcodec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

const headerSize = 44

// Decode parses a WAV stream into a mono signal. Chunks other than fmt and
// data are skipped, so files carrying LIST or INFO metadata load fine. A
// broken container yields ErrUnreadableAudio; a well-formed file in an
// encoding the codec does not handle yields ErrUnsupportedFormat.
func Decode(r io.Reader) (types.AudioSignal, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return types.AudioSignal{}, fmt.Errorf("reading stream: %v: %w", err, types.ErrUnreadableAudio)
	}
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return types.AudioSignal{}, fmt.Errorf("missing RIFF/WAVE header: %w", types.ErrUnreadableAudio)
	}

	var (
		foundFmt      bool
		audioFormat   int
		channels      int
		sampleRate    int
		bitsPerSample int
		foundData     bool
		data          []byte
	)

	offset := 12
	for offset+8 <= len(raw) {
		chunkID := string(raw[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(raw[offset+4 : offset+8]))
		body := offset + 8

		end := body + chunkSize
		if end > len(raw) {
			// Tolerate a sloppy size on the final chunk.
			end = len(raw)
		}

		switch chunkID {
		case "fmt ":
			if end-body < 16 {
				return types.AudioSignal{}, fmt.Errorf("fmt chunk too small: %w", types.ErrUnreadableAudio)
			}
			audioFormat = int(binary.LittleEndian.Uint16(raw[body : body+2]))
			channels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
			foundFmt = true
		case "data":
			data = raw[body:end]
			foundData = true
		}

		// Chunks are word-aligned; odd sizes carry a pad byte.
		offset = body + chunkSize + chunkSize%2
	}

	if !foundFmt || !foundData {
		return types.AudioSignal{}, fmt.Errorf("missing fmt or data chunk: %w", types.ErrUnreadableAudio)
	}
	if audioFormat != 1 {
		return types.AudioSignal{}, fmt.Errorf("audio format %d, PCM only: %w", audioFormat, types.ErrUnsupportedFormat)
	}
	if channels < 1 {
		return types.AudioSignal{}, fmt.Errorf("channel count %d: %w", channels, types.ErrUnsupportedFormat)
	}
	if bitsPerSample != 8 && bitsPerSample != 16 {
		return types.AudioSignal{}, fmt.Errorf("%d bits per sample: %w", bitsPerSample, types.ErrUnsupportedFormat)
	}
	if sampleRate <= 0 {
		return types.AudioSignal{}, fmt.Errorf("sample rate %d: %w", sampleRate, types.ErrUnreadableAudio)
	}

	bytesPerSample := bitsPerSample / 8
	frameSize := channels * bytesPerSample
	frames := len(data) / frameSize

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		base := i * frameSize
		var sum float64
		for c := 0; c < channels; c++ {
			at := base + c*bytesPerSample
			if bitsPerSample == 16 {
				v := int16(binary.LittleEndian.Uint16(data[at : at+2]))
				sum += float64(v) / 32768.0
			} else {
				// 8-bit PCM is unsigned with a 128 midpoint.
				sum += (float64(data[at]) - 128.0) / 128.0
			}
		}
		samples[i] = sum / float64(channels)
	}

	return types.AudioSignal{Samples: samples, SampleRate: float64(sampleRate)}, nil
}

// Encode writes the signal as a 16-bit PCM mono WAV. Samples outside [-1, 1]
// are clamped.
func Encode(w io.Writer, signal types.AudioSignal) error {
	rate := signal.SampleRate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) || rate > math.MaxUint32 {
		return fmt.Errorf("sample rate %v: %w", rate, types.ErrInvalidParameter)
	}
	rateWord := uint32(math.Round(rate))

	dataSize := len(signal.Samples) * 2
	header := make([]byte, headerSize)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+dataSize))
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(header[22:], 1)  // mono
	binary.LittleEndian.PutUint32(header[24:], rateWord)
	binary.LittleEndian.PutUint32(header[28:], rateWord*2) // byte rate
	binary.LittleEndian.PutUint16(header[32:], 2)          // block align
	binary.LittleEndian.PutUint16(header[34:], 16)         // bits per sample
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(dataSize))

	if _, err := w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, dataSize)
	for i, s := range signal.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s*32767)))
	}
	_, err := w.Write(buf)
	return err
}
