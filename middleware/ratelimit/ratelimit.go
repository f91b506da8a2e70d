package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	clientErrors "github.com/jaxron/requester/pkg/client/errors"
	"github.com/jaxron/requester/pkg/client/logger"
	"github.com/jaxron/requester/pkg/client/middleware"
	"golang.org/x/time/rate"
)

// ErrRateLimitExceeded is returned when the wait for a token would outlast the context deadline.
var ErrRateLimitExceeded = clientErrors.ErrRateLimitExceeded

// RateLimiterMiddleware paces outbound requests with a token bucket.
// It only delays requests; each one is still sent exactly once.
type RateLimiterMiddleware struct {
	limiter *rate.Limiter
	logger  logger.Logger
}

// New creates a new RateLimiterMiddleware instance.
func New(requestsPerSecond float64, burst int) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  &logger.NoOpLogger{},
	}
}

// Process waits for the limiter before passing the request to the next middleware.
func (m *RateLimiterMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	m.logger.Debug("Processing request with rate limiter middleware")

	if err := m.limiter.Wait(ctx); err != nil {
		if strings.Contains(err.Error(), "would exceed context deadline") {
			m.logger.WithFields(logger.String("url", req.URL.String())).Warn("Rate limit wait exceeds deadline")
			return nil, fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
		}
		return nil, err
	}

	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *RateLimiterMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}
