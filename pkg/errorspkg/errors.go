// Package errorspkg provides common app errors that are safe to show to clients.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error. It hides the real cause from clients.
	ErrInternal = errors.New("internal")
	// ErrTooManyRequests indicates that the client exceeded its request rate.
	ErrTooManyRequests = errors.New("too many requests")
)
