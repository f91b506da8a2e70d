package client

import (
	"context"
	"net/http"

	"github.com/jaxron/requester/pkg/client/logger"
	"github.com/jaxron/requester/pkg/client/middleware"
)

// Transport performs the network call for a built Request.
// Implementations are expected to make exactly one outbound call and to
// return their errors unchanged; the response body is parsed by the caller.
type Transport interface {
	Fetch(ctx context.Context, req *Request) (*http.Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*http.Response, error)

// Fetch calls f(ctx, req).
func (f TransportFunc) Fetch(ctx context.Context, req *Request) (*http.Response, error) {
	return f(ctx, req)
}

// httpTransport sends requests with an *http.Client through a middleware chain.
type httpTransport struct {
	httpClient      *http.Client
	middlewareChain *middleware.Chain
	logger          logger.Logger
}

func (t *httpTransport) Fetch(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	// net/http has no notion of a fetch mode; it is only recorded.
	if req.Mode() != "" {
		t.logger.WithFields(logger.String("mode", req.Mode())).Debug("Request mode has no effect on the HTTP transport")
	}

	return t.middlewareChain.Process(ctx, t.httpClient, httpReq)
}
