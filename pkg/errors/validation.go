package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hostRegex matches hostnames and IPv4 literals.
var hostRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9.-]*[A-Za-z0-9])?$`)

// ValidateHost validates the host a connection is dialled to.
//
// The rules are intentionally conservative:
//   - No empty hosts
//   - No control characters
//   - No scheme or path (use the dedicated options for those)
//   - Maximum length of 253 characters
func ValidateHost(host string) error {
	if host == "" {
		return New(ErrCodeConfig, "host cannot be empty")
	}

	if len(host) > 253 {
		return New(ErrCodeConfig, "host too long (max 253 characters)")
	}

	for _, r := range host {
		if unicode.IsControl(r) {
			return New(ErrCodeConfig, "host contains invalid control characters")
		}
	}

	if strings.Contains(host, "://") {
		return New(ErrCodeConfig, "host must not include a scheme: %q", host)
	}

	if !hostRegex.MatchString(host) {
		return New(ErrCodeConfig, "invalid host: %q", host)
	}

	return nil
}

// ValidatePort validates a TCP port number.
func ValidatePort(port int) error {
	if port <= 0 || port > 65535 {
		return New(ErrCodeConfig, "port out of range: %d", port)
	}
	return nil
}

// ValidateEndpointPath validates the HTTP path of the websocket endpoint.
//
// Validation rules:
//   - Path cannot be empty
//   - Path must be absolute (start with /)
//   - No null bytes, control characters or whitespace
//   - No path traversal sequences (..)
func ValidateEndpointPath(path string) error {
	if path == "" {
		return New(ErrCodeConfig, "endpoint path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeConfig, "endpoint path contains invalid characters")
		}
	}

	if !strings.HasPrefix(path, "/") {
		return New(ErrCodeConfig, "endpoint path must start with /")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeConfig, "endpoint path cannot contain path traversal sequences (..)")
	}

	return nil
}
