// Package serializer renders and loads structured data in the formats
// the CLI and the API speak.
//
// The package supports three output formats:
//   - JSON: machine-readable structured data with proper indentation
//   - YAML: human-readable configuration format
//   - Table: human-readable tabular output with flattened keys
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	defer writer.Close() // Important: close to release file handles
//	if err := writer.Serialize(ctx, data); err != nil {
//		log.Fatal(err)
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// Reading goes through Reader or the FromFile convenience, which accepts
// local paths and http(s) URLs and detects the format from the extension.
package serializer

import "context"

// Serializer is an interface for rendering a value to an output format.
//
// The context parameter is used for cancellation and timeouts, relevant
// for implementations that perform I/O.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface that Serializers can implement if they
// need to release resources, such as file handles.
type Closer interface {
	Close() error
}
