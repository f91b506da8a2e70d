package middleware

import (
	"context"
	"net/http"
	"reflect"

	"github.com/jaxron/requester/pkg/client/logger"
)

// Chain runs middleware in registration order before the request is sent.
type Chain struct {
	middlewares []Middleware
	logger      logger.Logger
}

// NewChain creates a new middleware chain.
func NewChain(l logger.Logger, middlewares ...Middleware) *Chain {
	c := &Chain{
		middlewares: nil,
		logger:      l,
	}
	c.Then(middlewares...)
	return c
}

// Len returns the number of middlewares in the chain.
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Middlewares returns a copy of the registered middlewares.
func (c *Chain) Middlewares() []Middleware {
	out := make([]Middleware, len(c.middlewares))
	copy(out, c.middlewares)
	return out
}

// Then appends middleware to the chain. A middleware whose type is already
// registered replaces the existing one at its original position.
func (c *Chain) Then(middlewares ...Middleware) {
	for _, m := range middlewares {
		m.SetLogger(c.logger)

		replaced := false
		for i, existing := range c.middlewares {
			if reflect.TypeOf(existing) == reflect.TypeOf(m) {
				c.middlewares[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			c.middlewares = append(c.middlewares, m)
		}
	}
}

// Process runs the request through all middleware in the chain and sends it.
func (c *Chain) Process(ctx context.Context, httpClient *http.Client, req *http.Request) (*http.Response, error) {
	if len(c.middlewares) == 0 {
		return c.performRequest(ctx, httpClient, req)
	}

	c.logMiddlewareChain()
	return c.processMiddleware(ctx, httpClient, req, 0)
}

func (c *Chain) logMiddlewareChain() {
	for i, m := range c.middlewares {
		c.logger.WithFields(
			logger.Int("index", i),
			logger.String("type", reflect.TypeOf(m).String()),
		).Debug("Middleware in chain")
	}
}

func (c *Chain) processMiddleware(ctx context.Context, httpClient *http.Client, req *http.Request, index int) (*http.Response, error) {
	if index == len(c.middlewares) {
		return c.performRequest(ctx, httpClient, req)
	}

	return c.middlewares[index].Process(ctx, httpClient, req, func(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
		return c.processMiddleware(ctx, client, req, index+1)
	})
}

// performRequest executes the actual HTTP request. Errors from the client are
// returned as-is and the status code is left for the caller to interpret.
func (c *Chain) performRequest(ctx context.Context, httpClient *http.Client, req *http.Request) (*http.Response, error) {
	c.logger.WithFields(
		logger.String("method", req.Method),
		logger.String("url", req.URL.String()),
		logger.Int("len_headers", len(req.Header)),
	).Debug("Request")

	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(
		logger.Int("status", resp.StatusCode),
		logger.Int("len_headers", len(resp.Header)),
	).Debug("Response")

	return resp, nil
}

// SetLogger updates the logger for all middleware in the chain.
func (c *Chain) SetLogger(l logger.Logger) {
	for _, m := range c.middlewares {
		m.SetLogger(l)
	}
	c.logger = l
}
