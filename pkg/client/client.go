// Package client sends JSON requests: the payload travels in the query string
// for GET and in a JSON body for POST, PUT and DELETE, and the response body
// is parsed as JSON.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/jaxron/requester/pkg/client/errors"
	"github.com/jaxron/requester/pkg/client/logger"
	"github.com/jaxron/requester/pkg/client/middleware"
)

// Client sends JSON requests through a Transport.
type Client struct {
	transport     Transport
	http          *httpTransport
	logger        logger.Logger
	marshalFunc   MarshalFunc
	unmarshalFunc UnmarshalFunc
}

// NewClient creates a new Client instance with default settings.
func NewClient(opts ...Option) *Client {
	noop := &logger.NoOpLogger{}
	httpT := &httpTransport{
		httpClient: &http.Client{
			Transport:     http.DefaultTransport,
			CheckRedirect: nil,
			Jar:           nil,
			Timeout:       0,
		},
		middlewareChain: middleware.NewChain(noop),
		logger:          noop,
	}

	client := &Client{
		transport:     httpT,
		http:          httpT,
		logger:        noop,
		marshalFunc:   sonic.Marshal,
		unmarshalFunc: sonic.Unmarshal,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Send builds a request from its arguments, hands it to the transport and
// parses the response body as JSON.
//
// Errors from the transport, from reading the body and from the JSON parser
// are returned exactly as produced. The status code is not checked.
func (c *Client) Send(ctx context.Context, method Method, url string, payload Payload, placeInBody bool, opts ...ConfigOption) (any, error) {
	cfg := ResolveOptions(opts...)

	req, err := NewRequest(method, url, payload, placeInBody, cfg, c.marshalFunc)
	if err != nil {
		return nil, err
	}

	log := c.logger.WithFields(
		logger.String("method", string(req.Method())),
		logger.String("url", req.URL()),
		logger.String("fingerprint", req.Fingerprint()),
	)
	log.WithFields(
		logger.Bool("cors", cfg.CORS),
		logger.Bool("has_body", req.HasBody()),
	).Debug("Sending request")

	resp, err := c.transport.Fetch(ctx, req)
	if err != nil {
		log.WithFields(logger.Err(err)).Debug("Request failed")
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: no response and no error", errors.ErrInvalidTransport)
	}
	if resp.Body == nil {
		return nil, fmt.Errorf("%w: response has no body", errors.ErrInvalidTransport)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		log.WithFields(logger.Err(err)).Debug("Failed to read response body")
		return nil, err
	}

	var result any
	if err := c.unmarshalFunc(body, &result); err != nil {
		log.WithFields(logger.Int("status", resp.StatusCode), logger.Err(err)).Debug("Failed to parse response")
		return nil, err
	}

	log.WithFields(logger.Int("status", resp.StatusCode)).Debug("Response parsed")
	return result, nil
}

// Get sends payload as query parameters.
func (c *Client) Get(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return c.Send(ctx, MethodGet, url, payload, false, opts...)
}

// Post sends payload as a JSON body.
func (c *Client) Post(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return c.Send(ctx, MethodPost, url, payload, true, opts...)
}

// Put sends payload as a JSON body.
func (c *Client) Put(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return c.Send(ctx, MethodPut, url, payload, true, opts...)
}

// Delete sends payload as a JSON body.
func (c *Client) Delete(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return c.Send(ctx, MethodDelete, url, payload, true, opts...)
}
