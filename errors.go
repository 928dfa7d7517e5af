package main

import "errors"

// Sentinel errors returned by the auth and booking cores. Handlers map
// them to HTTP statuses at the boundary; anything unrecognized becomes a
// 500 with no internal detail.
var (
	// credential lifecycle
	errInvalidCredentials = errors.New("invalid credentials")
	errEmailNotVerified   = errors.New("email not verified")
	errDuplicateEmail     = errors.New("email already exists")
	errTokenInvalid       = errors.New("invalid token")
	errTokenExpired       = errors.New("token expired")
	errTokenRevoked       = errors.New("refresh revoked")
	errTokenMismatch      = errors.New("refresh mismatch")
	errAlreadyVerified    = errors.New("email already verified")

	// booking state machine
	errInvalidTimeRange = errors.New("end time must be after start time")
	errTutorNotFound    = errors.New("tutor not found")
	errTimeConflict     = errors.New("time conflict with existing session")
	errSessionNotFound  = errors.New("session not found")
	errForbidden        = errors.New("forbidden")
	errAlreadyHandled   = errors.New("session already handled")
	errInvalidAction    = errors.New("invalid action")
	errInvalidState     = errors.New("session is not pending")
	errTooLate          = errors.New("too late to cancel")
	errNotReady         = errors.New("session not accepted yet")
	errNotFinished      = errors.New("session not finished yet")
)

// validationError marks a malformed-input failure whose message is safe to
// surface verbatim to the client.
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

func invalidInput(msg string) error { return validationError{msg: msg} }

func isValidationError(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
