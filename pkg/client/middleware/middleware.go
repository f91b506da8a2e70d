package middleware

import (
	"context"
	"net/http"

	"github.com/jaxron/requester/pkg/client/logger"
)

// NextFunc is a function type that represents the next middleware in the chain.
type NextFunc func(context.Context, *http.Client, *http.Request) (*http.Response, error)

// Middleware is a hook around the single outbound call made by the HTTP transport.
// Implementations must call next at most once.
type Middleware interface {
	Process(ctx context.Context, httpClient *http.Client, req *http.Request, next NextFunc) (*http.Response, error)
	SetLogger(l logger.Logger)
}
