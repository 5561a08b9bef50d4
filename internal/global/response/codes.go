package response

import "net/http"

// Error taxonomy: invalid input, unauthorized, not found, conflict,
// downstream unavailable, internal. The business code doubles as the HTTP
// status family so clients can switch on either.
var (
	ErrInvalidRequest  = newError(http.StatusBadRequest, 40000, "invalid request")
	ErrUnauthorized    = newError(http.StatusUnauthorized, 40100, "unauthorized")
	ErrInvalidPassword = newError(http.StatusUnauthorized, 40101, "invalid credentials")
	ErrTokenInvalid    = newError(http.StatusUnauthorized, 40102, "invalid or expired token")
	ErrNotFound        = newError(http.StatusNotFound, 40400, "resource not found")
	ErrAlreadyExists   = newError(http.StatusConflict, 40900, "resource already exists")
	ErrEventConflict   = newError(http.StatusConflict, 40901, "event conflicts with existing events")
	ErrDatabase        = newError(http.StatusInternalServerError, 50000, "storage failure")
	ErrInternal        = newError(http.StatusInternalServerError, 50001, "internal error")
	ErrUnavailable     = newError(http.StatusServiceUnavailable, 50300, "service unavailable")
)
