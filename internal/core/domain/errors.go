package domain

import "errors"

var ErrAuthRequired = errors.New("authentication required")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrSessionExpired = errors.New("session expired")
var ErrSessionNotFound = errors.New("session not found")
var ErrForbidden = errors.New("access forbidden")
var ErrCartNotFound = errors.New("cart not found")
var ErrWizardNotFound = errors.New("booking wizard not started")
var ErrStepIncomplete = errors.New("current step is incomplete")
var ErrInvalidTransition = errors.New("invalid wizard transition")
var ErrNotGuestBooking = errors.New("no guest booking to convert")

// UpstreamError carries a business failure reported by the salon API
// (envelope success=false or a non-2xx status). Message is the backend's
// message verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "upstream request failed"
}

// IsUpstreamStatus reports whether err is an UpstreamError with the given
// HTTP status code.
func IsUpstreamStatus(err error, code int) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == code
}
