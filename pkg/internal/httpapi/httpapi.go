// Package httpapi exposes the Morse translation service over HTTP. It is the
// wiring layer between the network and the DSP components: text render requests
// go to a connected Keyer and the resulting waveform is persisted through the
// ArtifactStore; audio uploads are parsed by the WAV codec and decoded by a
// connected Decoder; stored artifacts are served back for playback.
//
// Key features of the httpapi component include:
//
//   - Render endpoint: POST /api/translate-to-morse takes JSON {text, wpm} and
//     answers with the path of a freshly generated WAV artifact.
//   - Decode endpoint: POST /api/translate-from-audio takes a multipart upload
//     with optional wpm/threshold/frequency overrides and answers with the full
//     decoding result.
//   - Bounded decode work: uploads run through an internal pipeline so a burst
//     of requests cannot start unbounded DSP jobs.
//   - Artifact serving: GET /uploads/{name} and /generated/{name} stream stored
//     audio with range support.
//   - Status endpoint: GET /api/status reports uptime, request counters, and a
//     host snapshot (CPU, memory, goroutines).
//   - Optional TLS with configurable protocol version bounds and client CA.
//
// Collaborators are attached with ConnectDecoder, ConnectKeyer, and
// ConnectStore before Serve is called; Serve then blocks until its context is
// canceled or the listener fails.
package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

const (
	defaultAddress         = ":8080"
	defaultTimeout         = 30 * time.Second
	defaultMaxRequestBytes = 16 << 20
	defaultBufferSize      = 64
	defaultMaxWorkers      = 4

	// Renders without an explicit wpm use the conventional 20 words per minute.
	defaultRenderWPM = 20.0

	// shutdownDrainWindow bounds how long Serve waits for in-flight requests
	// once its context is canceled.
	shutdownDrainWindow = 5 * time.Second
)

// apiServer implements types.APIServer.
type apiServer struct {
	componentMetadata types.ComponentMetadata

	ctx context.Context

	// Basic config
	address         string
	headers         map[string]string
	timeout         time.Duration
	tlsConfig       types.TLSConfig
	maxRequestBytes int64

	// Decode job queue sizing, handed to the internal pipeline on Serve.
	bufferSize int
	maxWorkers int

	// Collaborators, wired before Serve.
	decoder types.Decoder
	keyer   types.Keyer
	store   types.ArtifactStore

	// Decode job pipeline, live between Serve and shutdown.
	jobs types.Pipeline[*decodeJob]

	// Counters for the status endpoint.
	startTime        time.Time
	rendersCompleted uint64
	decodesCompleted uint64
	decodeFailures   uint64

	loggers     []types.Logger
	loggersLock sync.Mutex

	// Underlying http.Server
	server   *http.Server
	serverMu sync.Mutex
}

// NewAPIServer creates a new APIServer with the provided options. A server
// needs a decoder, a keyer, and a store connected before Serve; everything
// else has defaults.
func NewAPIServer(ctx context.Context, options ...types.Option[types.APIServer]) types.APIServer {
	a := &apiServer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "API_SERVER",
		},
		ctx:             ctx,
		address:         defaultAddress,
		headers:         make(map[string]string),
		timeout:         defaultTimeout,
		maxRequestBytes: defaultMaxRequestBytes,
		bufferSize:      defaultBufferSize,
		maxWorkers:      defaultMaxWorkers,
		startTime:       time.Now(),
	}

	for _, opt := range options {
		opt(a)
	}
	return a
}
