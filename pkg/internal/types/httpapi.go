package types

import (
	"context"
	"time"
)

// APIServer is the HTTP face of the decode service. It accepts text-to-Morse render
// requests and audio uploads for decoding, serves stored artifacts for playback,
// and reports process health. Requests are fed through a bounded pipeline so a
// burst of uploads cannot start unbounded DSP work.
type APIServer interface {
	// Serve blocks, listening on the configured address until the context is
	// canceled or the listener fails. Shutdown drains in-flight decode jobs.
	Serve(ctx context.Context) error

	// ConnectLogger attaches logger(s).
	ConnectLogger(...Logger)

	// ConnectDecoder wires the decoder used for audio uploads.
	ConnectDecoder(Decoder)

	// ConnectKeyer wires the keyer used for text renders.
	ConnectKeyer(Keyer)

	// ConnectStore wires the artifact store backing uploads and renders.
	ConnectStore(ArtifactStore)

	// GetComponentMetadata retrieves metadata about the server (its ID, name, type).
	GetComponentMetadata() ComponentMetadata

	// NotifyLoggers is a helper function to send formatted log messages
	// to all connected loggers. Observers can filter by LogLevel.
	NotifyLoggers(level LogLevel, format string, args ...interface{})

	// SetAddress sets the IP/port on which the server will listen (e.g., ":8080").
	SetAddress(address string)

	SetComponentMetadata(name string, id string)

	// SetConcurrencyControl sets the decode job queue capacity and worker count.
	SetConcurrencyControl(bufferSize int, maxWorkers int)

	// SetMaxRequestBytes caps the accepted request body size.
	SetMaxRequestBytes(n int64)

	// SetTimeout sets a read/write timeout for inbound requests, to avoid
	// hanging connections.
	SetTimeout(timeout time.Duration)

	// SetTLSConfig configures the server to use TLS for inbound connections
	// according to the provided TLSConfig. If UseTLS == false, the server
	// serves plain HTTP.
	SetTLSConfig(tlsCfg TLSConfig)

	// AddHeader adds a default response header to all successful responses.
	AddHeader(key, value string)
}
