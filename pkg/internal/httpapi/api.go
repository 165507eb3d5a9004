package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PandasDrive/M2T/pkg/internal/pipeline"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// Serve starts listening on the configured address and blocks until the
// context is canceled or the listener fails. Shutdown drains in-flight
// requests, and with them any decode jobs they are waiting on, before the
// worker pipeline is stopped.
func (a *apiServer) Serve(ctx context.Context) error {
	a.serverMu.Lock()
	defer a.serverMu.Unlock()

	if a.decoder == nil || a.keyer == nil || a.store == nil {
		return fmt.Errorf("httpapi: decoder, keyer, and store must be connected before Serve")
	}

	a.loggersLock.Lock()
	attached := append([]types.Logger(nil), a.loggers...)
	a.loggersLock.Unlock()

	jobs := pipeline.NewPipeline[*decodeJob](ctx,
		pipeline.WithLogger[*decodeJob](attached...),
		pipeline.WithConcurrencyControl[*decodeJob](a.bufferSize, a.maxWorkers),
		pipeline.WithTransformer[*decodeJob](a.runDecodeJob),
	)
	if err := jobs.Start(ctx); err != nil {
		return fmt.Errorf("httpapi: starting decode pipeline: %w", err)
	}
	a.jobs = jobs

	// Handlers rendezvous with their jobs over per-job channels; the pipeline's
	// own channels only need draining.
	go func() {
		for range jobs.GetOutputChannel() {
		}
	}()
	go func() {
		for range jobs.GetErrorChannel() {
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/translate-to-morse", a.handleTranslateToMorse)
	mux.HandleFunc("/api/translate-from-audio", a.handleTranslateFromAudio)
	mux.HandleFunc("/api/status", a.handleStatus)
	mux.HandleFunc("/uploads/", a.handleArtifact(types.ArtifactUpload, "/uploads/"))
	mux.HandleFunc("/generated/", a.handleArtifact(types.ArtifactGenerated, "/generated/"))

	a.server = &http.Server{
		Addr:         a.address,
		Handler:      mux,
		ReadTimeout:  a.timeout,
		WriteTimeout: a.timeout,
	}

	if a.tlsConfig.UseTLS {
		tlsCfg, err := a.buildTLSConfig()
		if err != nil {
			_ = jobs.Stop()
			return err
		}
		a.server.TLSConfig = tlsCfg
	}

	errChan := make(chan error, 1)
	go func() {
		var err error
		if a.tlsConfig.UseTLS {
			a.NotifyLoggers(types.InfoLevel,
				"%s => level: INFO, event: Serve, message: Starting HTTPS server on %s",
				a.componentMetadata, a.address)
			// Cert and key already live in the server's TLSConfig.
			err = a.server.ListenAndServeTLS("", "")
		} else {
			a.NotifyLoggers(types.InfoLevel,
				"%s => level: INFO, event: Serve, message: Starting HTTP server on %s",
				a.componentMetadata, a.address)
			err = a.server.ListenAndServe()
		}
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		a.NotifyLoggers(types.WarnLevel,
			"%s => level: WARN, event: Serve, message: Context canceled; shutting down server.",
			a.componentMetadata)
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownDrainWindow)
		defer cancel()
		if err := a.server.Shutdown(drainCtx); err != nil {
			_ = a.server.Close()
		}
		_ = jobs.Stop()
		return ctx.Err()
	case err := <-errChan:
		_ = jobs.Stop()
		if err != nil && err != http.ErrServerClosed {
			a.NotifyLoggers(types.ErrorLevel,
				"%s => level: ERROR, event: Serve, message: Server error => %v",
				a.componentMetadata, err)
			return err
		}
		return nil
	}
}

// ConnectLogger attaches logger(s).
func (a *apiServer) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	a.loggers = append(a.loggers, loggers...)
}

// ConnectDecoder wires the decoder used for audio uploads.
func (a *apiServer) ConnectDecoder(decoder types.Decoder) {
	a.decoder = decoder
}

// ConnectKeyer wires the keyer used for text renders.
func (a *apiServer) ConnectKeyer(keyer types.Keyer) {
	a.keyer = keyer
}

// ConnectStore wires the artifact store backing uploads and renders.
func (a *apiServer) ConnectStore(store types.ArtifactStore) {
	a.store = store
}

// GetComponentMetadata returns metadata (ID, Name, Type).
func (a *apiServer) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}

// SetComponentMetadata sets Name and ID.
func (a *apiServer) SetComponentMetadata(name string, id string) {
	a.componentMetadata.Name = name
	a.componentMetadata.ID = id
}

// NotifyLoggers logs a formatted message to all attached loggers.
func (a *apiServer) NotifyLoggers(level types.LogLevel, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, logger := range a.loggers {
		if logger == nil {
			continue
		}
		if logger.GetLevel() <= level {
			switch level {
			case types.DebugLevel:
				logger.Debug(msg)
			case types.InfoLevel:
				logger.Info(msg)
			case types.WarnLevel:
				logger.Warn(msg)
			case types.ErrorLevel:
				logger.Error(msg)
			case types.DPanicLevel:
				logger.DPanic(msg)
			case types.PanicLevel:
				logger.Panic(msg)
			case types.FatalLevel:
				logger.Fatal(msg)
			}
		}
	}
}

// SetAddress configures the listen address.
func (a *apiServer) SetAddress(address string) {
	a.address = address
}

// SetConcurrencyControl sets the decode job queue capacity and worker count.
func (a *apiServer) SetConcurrencyControl(bufferSize int, maxWorkers int) {
	a.bufferSize = bufferSize
	a.maxWorkers = maxWorkers
}

// SetMaxRequestBytes caps the accepted request body size.
func (a *apiServer) SetMaxRequestBytes(n int64) {
	a.maxRequestBytes = n
}

// SetTimeout sets read/write timeouts.
func (a *apiServer) SetTimeout(timeout time.Duration) {
	a.timeout = timeout
}

// SetTLSConfig configures TLS for inbound connections.
func (a *apiServer) SetTLSConfig(tlsCfg types.TLSConfig) {
	a.tlsConfig = tlsCfg
}

// AddHeader adds default response headers.
func (a *apiServer) AddHeader(key, value string) {
	a.headers[key] = value
}
