package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is served when the client does not request a
	// specific version.
	DefaultAPIVersion = "v1"

	apiVersionHeader = "X-API-Version"

	// vendorMIMEPrefix is the Accept media type prefix clients use to
	// pin an API version, e.g. "application/vnd.donutdex.v1+json".
	vendorMIMEPrefix = "application/vnd.donutdex.v"
)

// validAPIVersions lists the versions this server can speak.
var validAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion extracts the requested API version from the
// Accept header. Unknown or absent versions fall back to the default.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return DefaultAPIVersion
	}

	for _, mediaType := range strings.Split(accept, ",") {
		mediaType = strings.TrimSpace(mediaType)
		if !strings.HasPrefix(mediaType, vendorMIMEPrefix) {
			continue
		}
		version := "v" + strings.TrimPrefix(mediaType, vendorMIMEPrefix)
		if suffix := strings.Index(version, "+"); suffix >= 0 {
			version = version[:suffix]
		}
		if isValidAPIVersion(version) {
			return version
		}
	}

	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return validAPIVersions[version]
}

// SetAPIVersionHeader advertises the negotiated version on the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(apiVersionHeader, version)
}
