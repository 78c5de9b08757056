package server

// contextKey is an unexported type for request context keys so other
// packages cannot collide with them.
type contextKey string

const (
	// contextKeyRequestID carries the per-request correlation id.
	contextKeyRequestID contextKey = "requestID"
	// contextKeyAPIVersion carries the negotiated API version.
	contextKeyAPIVersion contextKey = "apiVersion"
)
