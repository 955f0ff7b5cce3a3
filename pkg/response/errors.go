package response

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by the service layer. Handlers translate them to
// HTTP statuses with StatusCode; nothing in the core panics or throws.
var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrPositionNotFound  = errors.New("position not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrNotFound          = errors.New("not found")

	ErrAlreadyVoted  = errors.New("you have already voted for this position")
	ErrAlreadyJoined = errors.New("you are already registered for this election")
	ErrRoleNotPending = errors.New("role is not pending approval")

	ErrPositionFull  = errors.New("maximum number of candidates reached for this position")
	ErrHasCandidates = errors.New("cannot delete position with existing candidates")

	ErrTokenExpired = errors.New("this voting token has expired")

	ErrForbidden          = errors.New("not allowed")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation = errors.New("invalid input")
)

// StatusCode maps a service error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrElectionNotFound),
		errors.Is(err, ErrPositionNotFound),
		errors.Is(err, ErrCandidateNotFound),
		errors.Is(err, ErrRoleNotFound),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyVoted),
		errors.Is(err, ErrAlreadyJoined),
		errors.Is(err, ErrRoleNotPending):
		return http.StatusConflict
	case errors.Is(err, ErrPositionFull),
		errors.Is(err, ErrHasCandidates),
		errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
