package builder

import (
	"context"
	"time"

	"github.com/PandasDrive/M2T/pkg/internal/httpapi"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// NewAPIServer creates a new HTTP API server with the provided context and configuration options.
func NewAPIServer(ctx context.Context, options ...types.Option[types.APIServer]) types.APIServer {
	return httpapi.NewAPIServer(ctx, options...)
}

// ServerWithLogger adds one or more loggers to the server.
func ServerWithLogger(loggers ...types.Logger) types.Option[types.APIServer] {
	return httpapi.WithLogger(loggers...)
}

// ServerWithDecoder wires the decoder used for audio uploads.
func ServerWithDecoder(decoder types.Decoder) types.Option[types.APIServer] {
	return httpapi.WithDecoder(decoder)
}

// ServerWithKeyer wires the keyer used for text renders.
func ServerWithKeyer(keyer types.Keyer) types.Option[types.APIServer] {
	return httpapi.WithKeyer(keyer)
}

// ServerWithStore wires the artifact store backing uploads and renders.
func ServerWithStore(store types.ArtifactStore) types.Option[types.APIServer] {
	return httpapi.WithStore(store)
}

// ServerWithAddress sets the network address on which the server will listen (e.g., ":8080").
func ServerWithAddress(address string) types.Option[types.APIServer] {
	return httpapi.WithAddress(address)
}

// ServerWithConcurrencyControl sets the decode job queue capacity and worker count.
func ServerWithConcurrencyControl(bufferSize int, maxWorkers int) types.Option[types.APIServer] {
	return httpapi.WithConcurrencyControl(bufferSize, maxWorkers)
}

// ServerWithMaxRequestBytes caps the accepted request body size.
func ServerWithMaxRequestBytes(n int64) types.Option[types.APIServer] {
	return httpapi.WithMaxRequestBytes(n)
}

// ServerWithHeader adds a default response header to all successful responses.
func ServerWithHeader(key, value string) types.Option[types.APIServer] {
	return httpapi.WithHeader(key, value)
}

// ServerWithTimeout sets the read/write timeout for incoming requests.
func ServerWithTimeout(timeout time.Duration) types.Option[types.APIServer] {
	return httpapi.WithTimeout(timeout)
}

// ServerWithTLSConfig configures TLS for inbound connections.
func ServerWithTLSConfig(tlsCfg types.TLSConfig) types.Option[types.APIServer] {
	return httpapi.WithTLSConfig(tlsCfg)
}

// ServerWithComponentMetadata adds component metadata overrides.
func ServerWithComponentMetadata(name string, id string) types.Option[types.APIServer] {
	return httpapi.WithComponentMetadata(name, id)
}
