package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PandasDrive/M2T/pkg/builder"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("warn"))

	fmt.Println("Creating a Keyer for a 700 Hz tone at 8 kHz...")
	keyer := builder.NewKeyer(
		ctx,
		builder.KeyerWithLogger(logger),
		builder.KeyerWithFrequency(700),
		builder.KeyerWithSampleRate(8000),
	)

	const message = "PARIS PARIS"
	fmt.Printf("Rendering %q at 15 words per minute...\n", message)
	signal, err := keyer.Render(ctx, message, 15)
	if err != nil {
		fmt.Printf("Error rendering message: %v\n", err)
		return
	}
	fmt.Printf("Rendered %.2f seconds of audio at %.0f Hz.\n", signal.Duration(), signal.SampleRate)

	fmt.Println("Encoding the waveform as WAV...")
	var wav bytes.Buffer
	if err := builder.EncodeWAV(&wav, signal); err != nil {
		fmt.Printf("Error encoding WAV: %v\n", err)
		return
	}
	fmt.Printf("WAV size: %d bytes.\n", wav.Len())

	fmt.Println("Reading the WAV back...")
	recovered, err := builder.DecodeWAV(bytes.NewReader(wav.Bytes()))
	if err != nil {
		fmt.Printf("Error reading WAV: %v\n", err)
		return
	}

	fmt.Println("Decoding the recording...")
	decoder := builder.NewDecoder(
		ctx,
		builder.DecoderWithLogger(logger),
	)
	result, err := decoder.Decode(ctx, recovered, builder.DecodingParameters{})
	if err != nil {
		fmt.Printf("Error decoding audio: %v\n", err)
		return
	}

	fmt.Println("Decoded Timeline:")
	for _, event := range result.Events {
		fmt.Printf("  %5.2fs - %5.2fs  %-8s %q\n", event.StartTime, event.EndTime, event.MorseCode, event.Character)
	}
	fmt.Printf("Full text: %q\n", result.FullText)
	fmt.Printf("Estimated speed: %.1f WPM on a %.0f Hz carrier, average SNR %.1f dB.\n",
		result.WPM, result.Frequency, result.AvgSNR)

	if result.FullText == message {
		fmt.Println("Round trip recovered the original message.")
	} else {
		fmt.Println("Round trip diverged from the original message.")
	}
}
