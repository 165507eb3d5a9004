package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/PandasDrive/M2T/pkg/builder"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := builder.NewLogger(
		builder.LoggerWithLevel("debug"),
		builder.LoggerWithDevelopment(true),
	)

	fmt.Println("Wiring the decoder, keyer, and artifact store...")

	cache := builder.NewResultCache(
		ctx,
		builder.ResultCacheWithLogger(logger),
		builder.ResultCacheWithCompressionAlgorithm(builder.COMPRESS_SNAPPY),
		builder.ResultCacheWithCapacity(64),
	)

	decoder := builder.NewDecoder(
		ctx,
		builder.DecoderWithLogger(logger),
		builder.DecoderWithResultCache(cache),
	)

	keyer := builder.NewKeyer(
		ctx,
		builder.KeyerWithLogger(logger),
	)

	store := builder.NewArtifactStore(
		ctx,
		builder.StoreWithLogger(logger),
		builder.StoreWithDataDir("data"),
	)

	server := builder.NewAPIServer(
		ctx,
		builder.ServerWithLogger(logger),
		builder.ServerWithAddress(":8080"),
		builder.ServerWithDecoder(decoder),
		builder.ServerWithKeyer(keyer),
		builder.ServerWithStore(store),
		builder.ServerWithHeader("X-Service", "m2t-example"),
	)

	fmt.Println("Serving on http://localhost:8080 until interrupted...")
	fmt.Println(`  POST /api/translate-to-morse   {"text": "HELLO", "wpm": 20}`)
	fmt.Println("  POST /api/translate-from-audio multipart form with an audioFile part")
	fmt.Println("  GET  /api/status")

	if err := server.Serve(ctx); err != nil && err != context.Canceled {
		fmt.Printf("Server stopped with error: %v\n", err)
		return
	}
	fmt.Println("Server stopped cleanly.")
}
