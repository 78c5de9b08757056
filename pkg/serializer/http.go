package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/zadonuts/donutdex/pkg/defaults"
)

// HttpReaderUserAgent identifies the client in outbound requests.
const HttpReaderUserAgent = "donutdex/1.0"

// RespondJSON writes the given value as a JSON response with the given
// status code. The body is encoded before the header is written so an
// encoding failure still produces a well-formed error response.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// HttpReaderOption configures an HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches remote content over HTTP with sane timeout
// defaults. A custom client can be injected for testing.
type HttpReader struct {
	UserAgent          string
	TotalTimeout       time.Duration
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
	Client             *http.Client
}

// WithUserAgent overrides the User-Agent header on outbound requests.
func WithUserAgent(agent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = agent
	}
}

// WithTotalTimeout overrides the end-to-end request timeout.
func WithTotalTimeout(d time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		r.TotalTimeout = d
	}
}

// WithConnectTimeout overrides the connection dial timeout.
func WithConnectTimeout(d time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		r.ConnectTimeout = d
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Use
// only against trusted endpoints with self-signed certificates.
func WithInsecureSkipVerify(skip bool) HttpReaderOption {
	return func(r *HttpReader) {
		r.InsecureSkipVerify = skip
	}
}

// WithClient injects a pre-built HTTP client, bypassing the default
// transport configuration.
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		r.Client = client
	}
}

// NewHttpReader creates an HttpReader with default timeouts, applying
// any provided options.
func NewHttpReader(opts ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent:      HttpReaderUserAgent,
		TotalTimeout:   defaults.HTTPClientTimeout,
		ConnectTimeout: defaults.HTTPConnectTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.Client == nil {
		r.Client = &http.Client{
			Timeout:   r.TotalTimeout,
			Transport: r.newTransport(),
		}
	}

	return r
}

func (r *HttpReader) newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		DialContext: (&net.Dialer{
			Timeout:   r.ConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: r.InsecureSkipVerify,
		},
	}
}

// Read fetches the content at the given URL.
func (r *HttpReader) Read(url string) ([]byte, error) {
	return r.ReadWithContext(context.Background(), url)
}

// ReadWithContext fetches the content at the given URL using the
// provided context for cancellation.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.UserAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// Download fetches the content at the given URL and writes it to the
// given file path.
func (r *HttpReader) Download(url, path string) error {
	return r.DownloadWithContext(context.Background(), url, path)
}

// DownloadWithContext fetches the content at the given URL and writes
// it to the given file path using the provided context.
func (r *HttpReader) DownloadWithContext(ctx context.Context, url, path string) error {
	data, err := r.ReadWithContext(ctx, url)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
