package stub

import (
	"fmt"
	"net/url"
	"regexp"
)

// ValidationError reports a rule field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// headerNameRegex validates HTTP header field names (RFC 7230 token).
var headerNameRegex = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+\-.^_\x60|~]+$`)

// Validate checks that the Rule is well formed. It does not consult any
// registry; key uniqueness is the registry's concern.
func (r Rule) Validate() error {
	if !r.Method.Valid() {
		return &ValidationError{Field: "method", Message: fmt.Sprintf("unknown HTTP method: %q", r.Method)}
	}

	if r.URL == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}
	if _, err := url.Parse(r.URL); err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("invalid url: %v", err)}
	}

	if r.Source == "" {
		return &ValidationError{Field: "source", Message: "source is required"}
	}

	if r.Delay < 0 {
		return &ValidationError{Field: "delay", Message: "delay must not be negative"}
	}

	if r.StatusCode < 100 || r.StatusCode > 599 {
		return &ValidationError{Field: "statusCode", Message: fmt.Sprintf("status code %d out of range", r.StatusCode)}
	}

	for name := range r.Headers {
		if !headerNameRegex.MatchString(name) {
			return &ValidationError{Field: "headers", Message: fmt.Sprintf("invalid header name: %q", name)}
		}
	}

	if r.HTTPVersion == "" {
		return &ValidationError{Field: "httpVersion", Message: "httpVersion is required"}
	}

	return nil
}
