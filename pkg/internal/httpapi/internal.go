package httpapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
	"github.com/PandasDrive/M2T/pkg/internal/wavcodec"
)

// uploadFieldName is the multipart field carrying the audio file.
const uploadFieldName = "audioFile"

// decodeJob carries one upload through the bounded worker pipeline.
type decodeJob struct {
	ctx    context.Context
	signal types.AudioSignal
	params types.DecodingParameters

	// Populated by the worker; done closes afterwards.
	result *types.DecodingResult
	err    error
	done   chan struct{}
}

// renderRequest is the JSON body of POST /api/translate-to-morse.
type renderRequest struct {
	Text string  `json:"text"`
	WPM  float64 `json:"wpm"`
}

// renderResponse points the client at the generated artifact.
type renderResponse struct {
	Filepath string `json:"filepath"`
}

// statusSnapshot is the GET /api/status payload.
type statusSnapshot struct {
	Status           string  `json:"status"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	RendersCompleted uint64  `json:"renders_completed"`
	DecodesCompleted uint64  `json:"decodes_completed"`
	DecodeFailures   uint64  `json:"decode_failures"`
	CPUPercent       float64 `json:"cpu_percent"`
	MemoryPercent    float64 `json:"memory_percent"`
	Goroutines       int     `json:"goroutines"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// runDecodeJob executes one decode inside the worker pipeline. The job's done
// channel closes once result and err are populated; the error is also returned
// so pipeline observers see failures.
func (a *apiServer) runDecodeJob(job *decodeJob) (*decodeJob, error) {
	job.result, job.err = a.decoder.Decode(job.ctx, job.signal, job.params)
	close(job.done)
	return job, job.err
}

// -----------------------------------------------------------------------------
// Handlers
// -----------------------------------------------------------------------------

func (a *apiServer) handleTranslateToMorse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.maxRequestBytes > 0 {
		if r.ContentLength > a.maxRequestBytes {
			a.writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds limit")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, a.maxRequestBytes)
	}

	var req renderRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		a.notifyHandlerError("TranslateToMorse", err)
		a.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.writeError(w, http.StatusBadRequest, "no text provided")
		return
	}
	wpm := req.WPM
	if wpm == 0 {
		wpm = defaultRenderWPM
	}

	signal, err := a.keyer.Render(r.Context(), req.Text, wpm)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := wavcodec.Encode(&buf, signal); err != nil {
		a.notifyHandlerError("TranslateToMorse", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	stored, err := a.store.Save(types.ArtifactGenerated, "morse.wav", &buf)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	atomic.AddUint64(&a.rendersCompleted, 1)
	a.NotifyLoggers(types.InfoLevel,
		"%s => level: INFO, event: TranslateToMorse, message: Rendered %d characters at %.1f wpm => %s",
		a.componentMetadata, len(req.Text), wpm, stored)
	a.writeJSON(w, http.StatusOK, renderResponse{Filepath: "/generated/" + stored})
}

func (a *apiServer) handleTranslateFromAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.maxRequestBytes > 0 {
		if r.ContentLength > a.maxRequestBytes {
			a.writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds limit")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, a.maxRequestBytes)
	}
	if err := r.ParseMultipartForm(a.maxRequestBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds limit")
			return
		}
		a.notifyHandlerError("TranslateFromAudio", err)
		a.writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "no audioFile part in the request")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		a.writeError(w, http.StatusBadRequest, "no file selected")
		return
	}

	params, err := parseDecodingParameters(r)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.notifyHandlerError("TranslateFromAudio", err)
		a.writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	// The upload is kept for replay before any decoding is attempted.
	stored, err := a.store.Save(types.ArtifactUpload, header.Filename, bytes.NewReader(data))
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	signal, err := wavcodec.Decode(bytes.NewReader(data))
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	job := &decodeJob{
		ctx:    r.Context(),
		signal: signal,
		params: params,
		done:   make(chan struct{}),
	}
	if err := a.jobs.Submit(r.Context(), job); err != nil {
		atomic.AddUint64(&a.decodeFailures, 1)
		a.notifyHandlerError("TranslateFromAudio", err)
		a.writeError(w, http.StatusServiceUnavailable, "decode queue is full")
		return
	}
	select {
	case <-job.done:
	case <-r.Context().Done():
		a.writeError(w, http.StatusServiceUnavailable, "request canceled")
		return
	}
	if job.err != nil {
		atomic.AddUint64(&a.decodeFailures, 1)
		a.writeDomainError(w, job.err)
		return
	}

	atomic.AddUint64(&a.decodesCompleted, 1)
	a.NotifyLoggers(types.InfoLevel,
		"%s => level: INFO, event: TranslateFromAudio, message: Decoded %s => %q (wpm %.1f)",
		a.componentMetadata, stored, job.result.FullText, job.result.WPM)
	a.writeJSON(w, http.StatusOK, job.result)
}

// handleArtifact serves stored audio for one artifact category. The store
// resolves names, so traversal attempts surface as not-found.
func (a *apiServer) handleArtifact(kind types.ArtifactKind, prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimPrefix(r.URL.Path, prefix)
		target, err := a.store.Path(kind, name)
		if err != nil {
			a.writeDomainError(w, err)
			return
		}
		for key, val := range a.headers {
			w.Header().Set(key, val)
		}
		w.Header().Set("Content-Type", "audio/wav")
		http.ServeFile(w, r, target)
	}
}

func (a *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot := statusSnapshot{
		Status:           "ok",
		UptimeSeconds:    time.Since(a.startTime).Seconds(),
		RendersCompleted: atomic.LoadUint64(&a.rendersCompleted),
		DecodesCompleted: atomic.LoadUint64(&a.decodesCompleted),
		DecodeFailures:   atomic.LoadUint64(&a.decodeFailures),
		Goroutines:       runtime.NumGoroutine(),
	}
	// 500ms sampling window for the CPU average.
	if cpuPercentages, err := cpu.Percent(time.Millisecond*500, false); err == nil && len(cpuPercentages) > 0 {
		snapshot.CPUPercent = cpuPercentages[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		snapshot.MemoryPercent = memStats.UsedPercent
	}

	a.writeJSON(w, http.StatusOK, snapshot)
}

// -----------------------------------------------------------------------------
// Helper Methods
// -----------------------------------------------------------------------------

// parseDecodingParameters reads the optional wpm/threshold/frequency form
// fields. Absent fields stay zero, which the decoder treats as unset; fields
// that are present but unparseable are rejected here.
func parseDecodingParameters(r *http.Request) (types.DecodingParameters, error) {
	var params types.DecodingParameters
	fields := []struct {
		name string
		dest *float64
	}{
		{"wpm", &params.WPM},
		{"threshold", &params.ThresholdFactor},
		{"frequency", &params.Frequency},
	}
	for _, field := range fields {
		raw := strings.TrimSpace(r.FormValue(field.name))
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, fmt.Errorf("form field %s=%q: %w", field.name, raw, types.ErrInvalidParameter)
		}
		*field.dest = parsed
	}
	return params, nil
}

// writeJSON emits a success payload with the configured default headers.
func (a *apiServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	for key, val := range a.headers {
		w.Header().Set(key, val)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.notifyHandlerError("writeJSON", err)
	}
}

// writeError emits the JSON error envelope shared by every failure path.
func (a *apiServer) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: msg})
}

// writeDomainError maps component sentinels onto HTTP statuses. Anything
// unrecognized reports as a plain 500 so internals do not leak.
func (a *apiServer) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidParameter),
		errors.Is(err, types.ErrUnmappableText),
		errors.Is(err, types.ErrUnreadableAudio),
		errors.Is(err, types.ErrUnsupportedFormat):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrSignalTooLong),
		errors.Is(err, types.ErrArtifactTooLarge):
		a.writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, types.ErrArtifactNotFound):
		a.writeError(w, http.StatusNotFound, err.Error())
	default:
		a.notifyHandlerError("writeDomainError", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// notifyHandlerError logs a request-path failure.
func (a *apiServer) notifyHandlerError(event string, err error) {
	a.NotifyLoggers(types.ErrorLevel,
		"%s => level: ERROR, event: %s, error: %v",
		a.componentMetadata, event, err)
}

// buildTLSConfig assembles the server-side TLS configuration. A CA file, when
// given, turns on client certificate verification.
func (a *apiServer) buildTLSConfig() (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(a.tlsConfig.CertFile, a.tlsConfig.KeyFile)
	if err != nil {
		a.NotifyLoggers(types.ErrorLevel,
			"%s => level: ERROR, event: buildTLSConfig, message: load keypair failed => %v",
			a.componentMetadata, err)
		return nil, err
	}

	minTLSVersion := a.tlsConfig.MinTLSVersion
	if minTLSVersion == 0 {
		minTLSVersion = tls.VersionTLS12
	}
	maxTLSVersion := a.tlsConfig.MaxTLSVersion
	if maxTLSVersion == 0 {
		maxTLSVersion = tls.VersionTLS13
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minTLSVersion,
		MaxVersion:   maxTLSVersion,
	}

	if a.tlsConfig.CAFile != "" {
		ca, err := os.ReadFile(a.tlsConfig.CAFile)
		if err != nil {
			a.NotifyLoggers(types.ErrorLevel,
				"%s => level: ERROR, event: buildTLSConfig, message: read CA failed => %v",
				a.componentMetadata, err)
			return nil, err
		}
		certPool := x509.NewCertPool()
		if !certPool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("failed to append CA certificate")
		}
		cfg.ClientCAs = certPool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg, nil
}
