package header

import (
	"context"
	"net/http"

	"github.com/jaxron/requester/pkg/client/logger"
	"github.com/jaxron/requester/pkg/client/middleware"
)

// HeaderMiddleware supplies transport-wide headers such as User-Agent.
// A header is only added when the request does not already carry it, so
// the headers merged for the request itself always take precedence.
type HeaderMiddleware struct {
	headers http.Header
	logger  logger.Logger
}

// New creates a new HeaderMiddleware instance. The headers are copied.
func New(headers http.Header) *HeaderMiddleware {
	return &HeaderMiddleware{
		headers: headers.Clone(),
		logger:  &logger.NoOpLogger{},
	}
}

// Process fills in missing headers before passing the request to the next middleware.
func (m *HeaderMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	added := 0
	for key, values := range m.headers {
		if len(req.Header.Values(key)) > 0 {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
		added++
	}

	m.logger.WithFields(logger.Int("added", added)).Debug("Applied fallback headers")
	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *HeaderMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}
