package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/PandasDrive/M2T/pkg/internal/decoder"
	"github.com/PandasDrive/M2T/pkg/internal/httpapi"
	"github.com/PandasDrive/M2T/pkg/internal/keyer"
	"github.com/PandasDrive/M2T/pkg/internal/store"
	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/wavcodec"
)

// startServer boots a fully wired service on an ephemeral port and returns its
// base URL. Shutdown happens through test cleanup.
func startServer(t *testing.T, options ...types.Option[types.APIServer]) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	address := ln.Addr().String()
	ln.Close()

	opts := append([]types.Option[types.APIServer]{
		httpapi.WithAddress(address),
		httpapi.WithDecoder(decoder.NewDecoder(ctx)),
		httpapi.WithKeyer(keyer.NewKeyer(ctx)),
		httpapi.WithStore(store.NewArtifactStore(ctx, store.WithDataDir(t.TempDir()))),
		httpapi.WithHeader("X-Service", "m2t"),
	}, options...)
	srv := httpapi.NewAPIServer(ctx, opts...)

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	waitForServer(t, address)

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Errorf("server at %s did not shut down", address)
		}
	})
	return "http://" + address
}

func waitForServer(t *testing.T, address string) {
	t.Helper()
	for i := 0; i < 200; i++ {
		conn, err := net.DialTimeout("tcp", address, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server at %s never became reachable", address)
}

// renderWAV builds a decodable upload without going through the service.
func renderWAV(t *testing.T, text string, wpm float64) []byte {
	t.Helper()
	ctx := context.Background()
	k := keyer.NewKeyer(ctx, keyer.WithSampleRate(8000))
	signal, err := k.Render(ctx, text, wpm)
	if err != nil {
		t.Fatalf("Render(%q): %v", text, err)
	}
	var buf bytes.Buffer
	if err := wavcodec.Encode(&buf, signal); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

// multipartUpload assembles a translate-from-audio body with optional extra
// form fields.
func multipartUpload(t *testing.T, filename string, payload []byte, form map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, val := range form {
		if err := mw.WriteField(key, val); err != nil {
			t.Fatalf("WriteField(%s): %v", key, err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("audioFile", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(payload); err != nil {
			t.Fatalf("write payload: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &envelope)
	if envelope.Error == "" {
		t.Fatalf("expected a populated error envelope, got none")
	}
	return envelope.Error
}

func TestServeRendersAndServesArtifact(t *testing.T) {
	base := startServer(t)

	resp := postJSON(t, base+"/api/translate-to-morse", `{"text":"SOS","wpm":20}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Service"); got != "m2t" {
		t.Errorf("default header X-Service = %q, want m2t", got)
	}
	var rendered struct {
		Filepath string `json:"filepath"`
	}
	decodeBody(t, resp, &rendered)
	if !strings.HasPrefix(rendered.Filepath, "/generated/") {
		t.Fatalf("filepath = %q, want a /generated/ path", rendered.Filepath)
	}

	audio, err := http.Get(base + rendered.Filepath)
	if err != nil {
		t.Fatalf("GET %s: %v", rendered.Filepath, err)
	}
	defer audio.Body.Close()
	if audio.StatusCode != http.StatusOK {
		t.Fatalf("artifact status = %d, want 200", audio.StatusCode)
	}
	if ct := audio.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("artifact Content-Type = %q, want audio/wav", ct)
	}
	raw, err := io.ReadAll(audio.Body)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if len(raw) < 44 || string(raw[:4]) != "RIFF" {
		t.Fatalf("artifact is not a WAV file (%d bytes)", len(raw))
	}
}

func TestServeDecodesUpload(t *testing.T) {
	base := startServer(t)
	payload := renderWAV(t, "SOS", 12)

	body, contentType := multipartUpload(t, "sos.wav", payload, nil)
	resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decode status = %d, want 200", resp.StatusCode)
	}
	var result types.DecodingResult
	decodeBody(t, resp, &result)
	if result.FullText != "SOS" {
		t.Errorf("full_text = %q, want SOS", result.FullText)
	}
	if result.WPM <= 0 {
		t.Errorf("wpm = %v, want a positive estimate", result.WPM)
	}
	if len(result.Events) != 3 {
		t.Errorf("events = %d, want 3", len(result.Events))
	}
}

func TestServeAppliesDecodingOverrides(t *testing.T) {
	base := startServer(t)
	payload := renderWAV(t, "SOS", 12)

	body, contentType := multipartUpload(t, "sos.wav", payload, map[string]string{
		"wpm":       "12",
		"frequency": "700",
	})
	resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decode status = %d, want 200", resp.StatusCode)
	}
	var result types.DecodingResult
	decodeBody(t, resp, &result)
	if result.FullText != "SOS" {
		t.Errorf("full_text = %q, want SOS", result.FullText)
	}
	if result.WPM != 12 {
		t.Errorf("wpm = %v, want the override 12", result.WPM)
	}
	if result.Frequency != 700 {
		t.Errorf("frequency = %v, want the override 700", result.Frequency)
	}
}

func TestServeRejectsBadRequests(t *testing.T) {
	base := startServer(t)
	wav := renderWAV(t, "E", 15)

	t.Run("render without text", func(t *testing.T) {
		resp := postJSON(t, base+"/api/translate-to-morse", `{}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		if msg := errorMessage(t, resp); !strings.Contains(msg, "no text") {
			t.Errorf("error = %q, want a missing-text message", msg)
		}
	})

	t.Run("render with malformed JSON", func(t *testing.T) {
		resp := postJSON(t, base+"/api/translate-to-morse", `not json at all`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("render with unmappable characters", func(t *testing.T) {
		resp := postJSON(t, base+"/api/translate-to-morse", `{"text":"~~~"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("render with negative wpm", func(t *testing.T) {
		resp := postJSON(t, base+"/api/translate-to-morse", `{"text":"E","wpm":-5}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("render with wrong method", func(t *testing.T) {
		resp, err := http.Get(base + "/api/translate-to-morse")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("upload without file part", func(t *testing.T) {
		body, contentType := multipartUpload(t, "", nil, map[string]string{"wpm": "12"})
		resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		if msg := errorMessage(t, resp); !strings.Contains(msg, "audioFile") {
			t.Errorf("error = %q, want a missing-part message", msg)
		}
	})

	t.Run("upload with unparseable override", func(t *testing.T) {
		body, contentType := multipartUpload(t, "e.wav", wav, map[string]string{"wpm": "fast"})
		resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("upload with disallowed extension", func(t *testing.T) {
		body, contentType := multipartUpload(t, "notes.mp3", wav, nil)
		resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("upload that is not audio", func(t *testing.T) {
		body, contentType := multipartUpload(t, "noise.wav", []byte("definitely not a wav"), nil)
		resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("missing artifact", func(t *testing.T) {
		resp, err := http.Get(base + "/generated/nope.wav")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		errorMessage(t, resp)
	})

	t.Run("status with wrong method", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, base+"/api/status", nil)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("DELETE: %v", err)
		}
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", resp.StatusCode)
		}
		errorMessage(t, resp)
	})
}

func TestServeRejectsOversizedUpload(t *testing.T) {
	base := startServer(t, httpapi.WithMaxRequestBytes(2048))

	body, contentType := multipartUpload(t, "big.wav", make([]byte, 8192), nil)
	resp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
	errorMessage(t, resp)
}

func TestServeStatusReportsCounters(t *testing.T) {
	base := startServer(t)

	var before struct {
		Status           string `json:"status"`
		RendersCompleted uint64 `json:"renders_completed"`
		DecodesCompleted uint64 `json:"decodes_completed"`
		Goroutines       int    `json:"goroutines"`
	}
	resp, err := http.Get(base + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status endpoint = %d, want 200", resp.StatusCode)
	}
	decodeBody(t, resp, &before)
	if before.Status != "ok" {
		t.Errorf("status = %q, want ok", before.Status)
	}
	if before.Goroutines <= 0 {
		t.Errorf("goroutines = %d, want a positive count", before.Goroutines)
	}
	if before.RendersCompleted != 0 || before.DecodesCompleted != 0 {
		t.Errorf("fresh counters = %d/%d, want 0/0", before.RendersCompleted, before.DecodesCompleted)
	}

	postJSON(t, base+"/api/translate-to-morse", `{"text":"HELLO"}`).Body.Close()
	body, contentType := multipartUpload(t, "sos.wav", renderWAV(t, "SOS", 12), nil)
	decodeResp, err := http.Post(base+"/api/translate-from-audio", contentType, body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	decodeResp.Body.Close()

	var after struct {
		RendersCompleted uint64 `json:"renders_completed"`
		DecodesCompleted uint64 `json:"decodes_completed"`
	}
	resp, err = http.Get(base + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	decodeBody(t, resp, &after)
	if after.RendersCompleted != 1 {
		t.Errorf("renders_completed = %d, want 1", after.RendersCompleted)
	}
	if after.DecodesCompleted != 1 {
		t.Errorf("decodes_completed = %d, want 1", after.DecodesCompleted)
	}
}

func TestServeRequiresCollaborators(t *testing.T) {
	ctx := context.Background()
	srv := httpapi.NewAPIServer(ctx)
	if err := srv.Serve(ctx); err == nil {
		t.Fatal("Serve without collaborators should fail")
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	address := ln.Addr().String()
	ln.Close()

	srv := httpapi.NewAPIServer(ctx,
		httpapi.WithAddress(address),
		httpapi.WithDecoder(decoder.NewDecoder(ctx)),
		httpapi.WithKeyer(keyer.NewKeyer(ctx)),
		httpapi.WithStore(store.NewArtifactStore(ctx, store.WithDataDir(t.TempDir()))),
	)

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	waitForServer(t, address)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
