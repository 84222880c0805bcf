package reviews

import "errors"

// Failure categories for a hydration attempt. Fetch wraps one of these;
// Resolve logs it and falls back.
var (
	ErrConfigurationMissing = errors.New("review endpoint not configured")
	ErrNetwork              = errors.New("review request failed")
	ErrMalformedResponse    = errors.New("malformed review response")
	ErrEmptyResult          = errors.New("no usable reviews")
)

// category names the failure for log fields.
func category(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, ErrNetwork):
		return "network_failure"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	}
	return "unknown"
}
