package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/PandasDrive/M2T/pkg/builder"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	var (
		address        = pflag.StringP("listen", "l", builder.EnvOr("M2T_LISTEN", ":8080"), "Address the HTTP API listens on.")
		dataDir        = pflag.StringP("data-dir", "d", builder.EnvOr("M2T_DATA_DIR", "data"), "Directory for uploaded and generated audio.")
		logLevel       = pflag.String("log-level", builder.EnvOr("M2T_LOG_LEVEL", "info"), "Log level: debug, info, warn, or error.")
		workers        = pflag.IntP("workers", "w", builder.EnvIntOr("M2T_WORKERS", 4), "Concurrent decode workers.")
		queueDepth     = pflag.Int("queue-depth", builder.EnvIntOr("M2T_QUEUE_DEPTH", 64), "Pending decode job capacity.")
		maxDuration    = pflag.Float64("max-duration", builder.EnvFloatOr("M2T_MAX_DURATION", 120), "Longest accepted recording in seconds.")
		maxRequestMiB  = pflag.Int64("max-request-mib", int64(builder.EnvIntOr("M2T_MAX_REQUEST_MIB", 16)), "Largest accepted request body in MiB.")
		cacheCapacity  = pflag.Int("cache-capacity", builder.EnvIntOr("M2T_CACHE_CAPACITY", 256), "Decode result cache entries; zero keeps the cache unbounded.")
		cacheAlgorithm = pflag.String("cache-algorithm", builder.EnvOr("M2T_CACHE_ALGORITHM", "zstd"), "Cache compression: none, deflate, snappy, zstd, brotli, or lz4.")
		cacheSpillDir  = pflag.String("cache-spill-dir", builder.EnvOr("M2T_CACHE_SPILL_DIR", ""), "Directory for cache spill files; empty keeps the cache memory-only.")
		spectrogram    = pflag.Bool("spectrogram", builder.EnvBoolOr("M2T_SPECTROGRAM", false), "Attach spectrogram data to decode results.")
		toneHz         = pflag.Float64("tone", builder.EnvFloatOr("M2T_TONE_HZ", 700), "Render carrier tone in Hz.")
		certFile       = pflag.String("tls-cert", builder.EnvOr("M2T_TLS_CERT", ""), "TLS certificate file; empty serves plain HTTP.")
		keyFile        = pflag.String("tls-key", builder.EnvOr("M2T_TLS_KEY", ""), "TLS private key file.")
	)
	pflag.Parse()

	logger := builder.NewLogger(builder.LoggerWithLevel(*logLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := builder.NewResultCache(ctx,
		builder.ResultCacheWithLogger(logger),
		builder.ResultCacheWithCompressionAlgorithm(parseCacheAlgorithm(*cacheAlgorithm)),
		builder.ResultCacheWithCapacity(*cacheCapacity),
		builder.ResultCacheWithSpillDirectory(*cacheSpillDir),
	)

	decoder := builder.NewDecoder(ctx,
		builder.DecoderWithLogger(logger),
		builder.DecoderWithResultCache(cache),
		builder.DecoderWithMaxSignalDuration(*maxDuration),
		builder.DecoderWithSpectrogram(*spectrogram),
	)

	keyer := builder.NewKeyer(ctx,
		builder.KeyerWithLogger(logger),
		builder.KeyerWithFrequency(*toneHz),
	)

	store := builder.NewArtifactStore(ctx,
		builder.StoreWithLogger(logger),
		builder.StoreWithDataDir(*dataDir),
		builder.StoreWithMaxArtifactSize(*maxRequestMiB<<20),
	)

	options := []builder.Option[builder.APIServer]{
		builder.ServerWithLogger(logger),
		builder.ServerWithAddress(*address),
		builder.ServerWithDecoder(decoder),
		builder.ServerWithKeyer(keyer),
		builder.ServerWithStore(store),
		builder.ServerWithConcurrencyControl(*queueDepth, *workers),
		builder.ServerWithMaxRequestBytes(*maxRequestMiB << 20),
	}
	if *certFile != "" && *keyFile != "" {
		options = append(options, builder.ServerWithTLSConfig(builder.TLSConfig{
			UseTLS:   true,
			CertFile: *certFile,
			KeyFile:  *keyFile,
		}))
	}

	server := builder.NewAPIServer(ctx, options...)
	if err := server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "m2td: %v\n", err)
		os.Exit(1)
	}
}

func parseCacheAlgorithm(name string) builder.CompressionAlgorithm {
	switch strings.ToLower(name) {
	case "none":
		return builder.COMPRESS_NONE
	case "deflate", "gzip":
		return builder.COMPRESS_DEFLATE
	case "snappy":
		return builder.COMPRESS_SNAPPY
	case "brotli":
		return builder.COMPRESS_BROTLI
	case "lz4":
		return builder.COMPRESS_LZ4
	default:
		return builder.COMPRESS_ZSTD
	}
}
