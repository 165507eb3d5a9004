package builder

import (
	"io"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/wavcodec"
)

// DecodeWAV parses a RIFF/WAVE stream into a mono audio signal. Stereo input
// is averaged down to one channel.
func DecodeWAV(r io.Reader) (types.AudioSignal, error) {
	return wavcodec.Decode(r)
}

// EncodeWAV writes a signal as 16-bit PCM mono WAV.
func EncodeWAV(w io.Writer, signal types.AudioSignal) error {
	return wavcodec.Encode(w, signal)
}
