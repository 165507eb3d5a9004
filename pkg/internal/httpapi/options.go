// Package httpapi offers a set of configurable options to tailor the HTTP
// service to different deployments, from a plain localhost server to a
// TLS-terminating endpoint with client certificate verification.

package httpapi

import (
	"time"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the server.
func WithLogger(loggers ...types.Logger) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.ConnectLogger(loggers...)
	}
}

// WithDecoder wires the decoder used for audio uploads.
func WithDecoder(decoder types.Decoder) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.ConnectDecoder(decoder)
	}
}

// WithKeyer wires the keyer used for text renders.
func WithKeyer(keyer types.Keyer) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.ConnectKeyer(keyer)
	}
}

// WithStore wires the artifact store backing uploads and renders.
func WithStore(store types.ArtifactStore) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.ConnectStore(store)
	}
}

// WithAddress sets the network address on which the server will listen (e.g., ":8080").
func WithAddress(address string) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.SetAddress(address)
	}
}

// WithConcurrencyControl sets the decode job queue capacity and worker count.
func WithConcurrencyControl(bufferSize int, maxWorkers int) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.SetConcurrencyControl(bufferSize, maxWorkers)
	}
}

// WithMaxRequestBytes caps the accepted request body size.
func WithMaxRequestBytes(n int64) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.SetMaxRequestBytes(n)
	}
}

// WithHeader adds a default response header to all successful server responses.
func WithHeader(key, value string) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.AddHeader(key, value)
	}
}

// WithTimeout sets the read/write timeout for incoming requests,
// helping to avoid hanging connections (e.g., slowloris attacks).
func WithTimeout(timeout time.Duration) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.SetTimeout(timeout)
	}
}

// WithTLSConfig configures TLS for inbound connections.
func WithTLSConfig(tlsCfg types.TLSConfig) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.SetTLSConfig(tlsCfg)
	}
}

// WithComponentMetadata overrides the server's name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.APIServer] {
	return func(srv types.APIServer) {
		srv.SetComponentMetadata(name, id)
	}
}
