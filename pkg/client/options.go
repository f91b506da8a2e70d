package client

import (
	"net/http"

	"github.com/jaxron/requester/pkg/client/logger"
	"github.com/jaxron/requester/pkg/client/middleware"
)

// MarshalFunc is a function type that matches standard marshal functions.
type MarshalFunc func(interface{}) ([]byte, error)

// UnmarshalFunc is a function type that matches standard unmarshal functions.
type UnmarshalFunc func([]byte, interface{}) error

// Option is a function type that modifies the Client configuration.
type Option func(*Client)

// WithTransport replaces the HTTP transport. Middleware and the HTTP client
// are not used by a custom transport. A nil transport is ignored.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http.httpClient = httpClient
		}
	}
}

// WithMiddleware adds middleware to the default transport. Middleware run
// in the order they are added.
func WithMiddleware(middlewares ...middleware.Middleware) Option {
	return func(c *Client) {
		c.http.middlewareChain.Then(middlewares...)
	}
}

// WithLogger sets the logger for the Client, its transport and middleware.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
		c.http.logger = l
		c.http.middlewareChain.SetLogger(l)
	}
}

// WithMarshalFunc sets the function used to encode request bodies.
func WithMarshalFunc(fn MarshalFunc) Option {
	return func(c *Client) {
		c.marshalFunc = fn
	}
}

// WithUnmarshalFunc sets the function used to decode response bodies.
func WithUnmarshalFunc(fn UnmarshalFunc) Option {
	return func(c *Client) {
		c.unmarshalFunc = fn
	}
}
