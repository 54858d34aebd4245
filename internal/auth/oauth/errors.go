package oauth

import "errors"

// ErrClientNotConfigured is returned when the Google client id or secret
// is missing from configuration.
var ErrClientNotConfigured = errors.New("google client id and secret are required")
