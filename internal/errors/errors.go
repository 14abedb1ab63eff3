package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these (wrapped with context) and the API layer uses `errors.Is()`
// to map them to HTTP responses or terminal stream events, without the service
// layer ever knowing about status codes.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation. Validation always happens before any model provider is called.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated signifies that the request carried no user identity.
	// This is typically mapped to a 401 Unauthorized HTTP status.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrPermission signifies that the authenticated user is not authorized
	// to perform the requested action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrUpstream signifies that the model provider failed (network, timeout,
	// quota). On a stream it becomes a terminal error event with a generic message.
	ErrUpstream = errors.New("model provider failed")

	// ErrRateLimited is not a failure of the request itself but a backpressure
	// signal. It is mapped to a 429 Too Many Requests HTTP status.
	ErrRateLimited = errors.New("rate limited")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
