package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatFromPath infers the serialization format from a file extension.
// Unknown extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".table", ".txt":
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "path", path)
		return FormatJSON
	}
}

// Reader decodes values from an input source in one format. Close must
// be called to release file handles when using NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a new Reader over the given input. Table format is
// write-only and rejected here. If the input implements io.Closer, it
// will be closed when Close is called.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s (supported: %s)", format, strings.Join(SupportedFormats(), ", "))
	}
	if input == nil {
		return nil, fmt.Errorf("input reader is required")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader creates a Reader over the given file path. Paths
// starting with http:// or https:// are downloaded to a temporary file
// first. Remember to call Close() on the returned Reader.
func NewFileReader(format Format, path string) (*Reader, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		tmp := filepath.Join(os.TempDir(), fmt.Sprintf("donutdex-%d%s", time.Now().UnixNano(), filepath.Ext(trimmed)))
		if err := NewHttpReader().Download(trimmed, tmp); err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", trimmed, err)
		}
		trimmed = tmp
	}

	file, err := os.Open(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", trimmed, err)
	}

	reader, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return reader, nil
}

// NewFileReaderAuto creates a file Reader with the format inferred from
// the file extension.
func NewFileReaderAuto(path string) (*Reader, error) {
	return NewFileReader(FormatFromPath(path), path)
}

// Close releases any resources associated with the Reader. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Deserialize decodes the input into the given value.
func (r *Reader) Deserialize(v any) error {
	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to deserialize from JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to deserialize from YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// FromFile loads a value of type T from the given file path or URL,
// inferring the format from the file extension.
func FromFile[T any](path string) (*T, error) {
	reader, err := NewFileReaderAuto(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var out T
	if err := reader.Deserialize(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
