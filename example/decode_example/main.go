package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/PandasDrive/M2T/pkg/builder"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: decode_example <recording.wav> [wpm]")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Printf("Opening %s...\n", os.Args[1])
	file, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening recording: %v\n", err)
		return
	}
	defer file.Close()

	signal, err := builder.DecodeWAV(file)
	if err != nil {
		fmt.Printf("Error reading WAV: %v\n", err)
		return
	}
	fmt.Printf("Read %.2f seconds of audio at %.0f Hz.\n", signal.Duration(), signal.SampleRate)

	params := builder.DecodingParameters{}
	if len(os.Args) > 2 {
		wpm, err := strconv.ParseFloat(os.Args[2], 64)
		if err != nil {
			fmt.Printf("Invalid WPM %q: %v\n", os.Args[2], err)
			return
		}
		params.WPM = wpm
		fmt.Printf("Decoding at a fixed %.1f words per minute...\n", wpm)
	} else {
		fmt.Println("Decoding with automatic speed estimation...")
	}

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))
	decoder := builder.NewDecoder(
		ctx,
		builder.DecoderWithLogger(logger),
	)

	result, err := decoder.Decode(ctx, signal, params)
	if err != nil {
		fmt.Printf("Error decoding audio: %v\n", err)
		return
	}

	fmt.Println("Decoded Timeline:")
	for _, event := range result.Events {
		fmt.Printf("  %5.2fs - %5.2fs  %-8s %q\n", event.StartTime, event.EndTime, event.MorseCode, event.Character)
	}
	fmt.Printf("Full text: %q\n", result.FullText)
	fmt.Printf("Speed: %.1f WPM, carrier: %.0f Hz, threshold factor: %.2f, average SNR: %.1f dB.\n",
		result.WPM, result.Frequency, result.ThresholdFactor, result.AvgSNR)
}
