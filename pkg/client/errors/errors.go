// Package errors holds the sentinel errors raised by the default HTTP
// transport and its middleware.
package errors

import (
	"errors"
)

var (
	ErrRequestCreation   = errors.New("request creation error")
	ErrInvalidTransport  = errors.New("invalid transport")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
