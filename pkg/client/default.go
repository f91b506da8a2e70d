package client

import "context"

var defaultClient = NewClient()

// Get sends payload as query parameters using a client with default settings.
func Get(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return defaultClient.Get(ctx, url, payload, opts...)
}

// Post sends payload as a JSON body using a client with default settings.
func Post(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return defaultClient.Post(ctx, url, payload, opts...)
}

// Put sends payload as a JSON body using a client with default settings.
func Put(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return defaultClient.Put(ctx, url, payload, opts...)
}

// Delete sends payload as a JSON body using a client with default settings.
func Delete(ctx context.Context, url string, payload Payload, opts ...ConfigOption) (any, error) {
	return defaultClient.Delete(ctx, url, payload, opts...)
}
