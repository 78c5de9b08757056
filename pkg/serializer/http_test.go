package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testEntry{Name: "cheri berry", Quantity: 5}

	RespondJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var result testEntry
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if result.Name != data.Name || result.Quantity != data.Quantity {
		t.Errorf("unexpected response data: %+v", result)
	}
}

func TestRespondJSON_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"BadRequest", http.StatusBadRequest},
		{"NotFound", http.StatusNotFound},
		{"InternalServerError", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			RespondJSON(w, tt.statusCode, map[string]string{"status": tt.name})

			if w.Code != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, w.Code)
			}
		})
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()

	// Channels cannot be marshaled to JSON. The body is buffered before
	// the header is written, so the failure surfaces as a clean 500.
	badData := make(chan int)

	RespondJSON(w, http.StatusOK, badData)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d for encoding error, got %d", http.StatusInternalServerError, w.Code)
	}

	if w.Body.Len() == 0 {
		t.Error("expected error message in body")
	}
}

func TestNewHttpReader_Defaults(t *testing.T) {
	reader := NewHttpReader()

	if reader.Client == nil {
		t.Error("expected non-nil Client")
	}

	if reader.UserAgent != HttpReaderUserAgent {
		t.Errorf("expected UserAgent %q, got %q", HttpReaderUserAgent, reader.UserAgent)
	}

	if reader.TotalTimeout <= 0 {
		t.Errorf("expected positive TotalTimeout, got %v", reader.TotalTimeout)
	}
}

func TestNewHttpReader_WithOptions(t *testing.T) {
	customUserAgent := "TestAgent/1.0"
	totalTimeout := 10 * time.Second
	connectTimeout := 2 * time.Second

	reader := NewHttpReader(
		WithUserAgent(customUserAgent),
		WithTotalTimeout(totalTimeout),
		WithConnectTimeout(connectTimeout),
		WithInsecureSkipVerify(true),
	)

	if reader.UserAgent != customUserAgent {
		t.Errorf("expected UserAgent %s, got %s", customUserAgent, reader.UserAgent)
	}

	if reader.TotalTimeout != totalTimeout {
		t.Errorf("TotalTimeout = %v, want %v", reader.TotalTimeout, totalTimeout)
	}

	if reader.ConnectTimeout != connectTimeout {
		t.Errorf("ConnectTimeout = %v, want %v", reader.ConnectTimeout, connectTimeout)
	}

	if reader.Client.Timeout != totalTimeout {
		t.Errorf("Client.Timeout = %v, want %v", reader.Client.Timeout, totalTimeout)
	}

	tr, ok := reader.Client.Transport.(*http.Transport)
	if !ok {
		t.Fatal("expected Client.Transport to be *http.Transport")
	}

	if tr.TLSClientConfig == nil || !tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected transport TLS InsecureSkipVerify to be true")
	}
}

func TestNewHttpReader_WithCustomClient(t *testing.T) {
	customClient := &http.Client{
		Timeout: 5 * time.Second,
	}

	reader := NewHttpReader(WithClient(customClient))

	if reader.Client != customClient {
		t.Error("expected custom client to be used")
	}
}

func TestHttpReader_Read_Success(t *testing.T) {
	want := []byte("test response data")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(want)
	}))
	defer server.Close()

	reader := NewHttpReader()
	data, err := reader.Read(server.URL)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if string(data) != string(want) {
		t.Errorf("expected data %q, got %q", string(want), string(data))
	}
}

func TestHttpReader_Read_EmptyURL(t *testing.T) {
	reader := NewHttpReader()
	_, err := reader.Read("")
	if err == nil {
		t.Fatal("expected error for empty URL")
	}
	if err.Error() != "url is empty" {
		t.Errorf("expected 'url is empty' error, got %v", err)
	}
}

func TestHttpReader_Read_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	reader := NewHttpReader()
	if _, err := reader.Read(server.URL); err == nil {
		t.Error("expected error for 404 status")
	}
}

func TestHttpReader_Read_InvalidURL(t *testing.T) {
	reader := NewHttpReader()
	if _, err := reader.Read("not-a-valid-url"); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestHttpReader_Read_SetsUserAgent(t *testing.T) {
	customUserAgent := "TestAgent/9.9"

	seen := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	reader := NewHttpReader(WithUserAgent(customUserAgent))
	if _, err := reader.Read(server.URL); err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	select {
	case ua := <-seen:
		if ua != customUserAgent {
			t.Fatalf("expected User-Agent %q, got %q", customUserAgent, ua)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server to receive request")
	}
}

func TestHttpReader_ReadWithContext_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If the request isn't canceled, block for long enough to fail the test.
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewHttpReader()
	_, err := reader.ReadWithContext(ctx, server.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected error to wrap context.Canceled, got %v", err)
	}
}

func TestHttpReader_Download_Success(t *testing.T) {
	want := []byte("downloaded content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(want)
	}))
	defer server.Close()

	filePath := filepath.Join(t.TempDir(), "download.txt")

	reader := NewHttpReader()
	if err := reader.Download(server.URL, filePath); err != nil {
		t.Fatalf("Download() failed: %v", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	if string(data) != string(want) {
		t.Errorf("expected file content %q, got %q", string(want), string(data))
	}
}

func TestHttpReader_Download_ReadError(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "download.txt")

	reader := NewHttpReader()
	if err := reader.Download("not-a-valid-url", filePath); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestHttpReader_Download_WriteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("content"))
	}))
	defer server.Close()

	reader := NewHttpReader()
	if err := reader.Download(server.URL, "/nonexistent/directory/file.txt"); err == nil {
		t.Error("expected error for invalid file path")
	}
}
