package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jaxron/requester/pkg/client"
	clientErrors "github.com/jaxron/requester/pkg/client/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Parallel()

	t.Run("GET places payload in the query string", func(t *testing.T) {
		t.Parallel()

		payload := client.NewPayload(
			client.Param{Key: "a", Value: 1},
			client.Param{Key: "b", Value: 2},
		)
		req, err := client.NewRequest(client.MethodGet, "http://example.com/items", payload, false, client.DefaultConfig(), nil)
		require.NoError(t, err)

		assert.Equal(t, client.MethodGet, req.Method())
		assert.Equal(t, "http://example.com/items?a=1&b=2", req.URL())
		assert.False(t, req.HasBody())
		assert.Nil(t, req.Body())
	})

	t.Run("Empty query payload leaves a trailing question mark", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewRequest(client.MethodGet, "http://example.com", nil, false, client.DefaultConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, "http://example.com?", req.URL())
	})

	t.Run("Query values are not escaped", func(t *testing.T) {
		t.Parallel()

		payload := client.NewPayload(client.Param{Key: "q", Value: "a&b"})
		req, err := client.NewRequest(client.MethodGet, "http://example.com", payload, false, client.DefaultConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, "http://example.com?q=a&b", req.URL())
	})

	t.Run("POST places payload in the body", func(t *testing.T) {
		t.Parallel()

		payload := client.NewPayload(client.Param{Key: "a", Value: 1})
		req, err := client.NewRequest(client.MethodPost, "http://example.com/items", payload, true, client.DefaultConfig(), nil)
		require.NoError(t, err)

		assert.Equal(t, "http://example.com/items", req.URL())
		assert.True(t, req.HasBody())
		assert.JSONEq(t, `{"a":1}`, string(req.Body()))
	})

	t.Run("Empty body payload is an empty object", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewRequest(client.MethodDelete, "http://example.com", nil, true, client.DefaultConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(req.Body()))
	})

	t.Run("Custom marshal function", func(t *testing.T) {
		t.Parallel()

		marshal := func(v interface{}) ([]byte, error) {
			return json.Marshal(map[string]string{"format": "custom"})
		}
		req, err := client.NewRequest(client.MethodPut, "http://example.com", client.Payload{}, true, client.DefaultConfig(), marshal)
		require.NoError(t, err)
		assert.Equal(t, `{"format":"custom"}`, string(req.Body()))
	})

	t.Run("Marshal errors are returned unchanged", func(t *testing.T) {
		t.Parallel()

		errMarshal := errors.New("cannot marshal")
		marshal := func(v interface{}) ([]byte, error) { return nil, errMarshal }

		_, err := client.NewRequest(client.MethodPost, "http://example.com", client.Payload{}, true, client.DefaultConfig(), marshal)
		assert.Equal(t, errMarshal, err)
	})

	t.Run("Body is not shared with callers", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewRequest(client.MethodPost, "http://example.com", client.Payload{}, true, client.DefaultConfig(), nil)
		require.NoError(t, err)

		body := req.Body()
		body[0] = 'X'
		assert.Equal(t, "{}", string(req.Body()))
	})
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	t.Run("Defaults without CORS", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewRequest(client.MethodGet, "http://example.com", nil, false, client.DefaultConfig(), nil)
		require.NoError(t, err)

		h := req.Header()
		assert.Equal(t, "application/json, text/plain, */*", h.Get("Accept"))
		assert.Equal(t, "application/json", h.Get("Content-Type"))
		assert.Empty(t, h.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "", req.Mode())
	})

	t.Run("CORS adds header and mode", func(t *testing.T) {
		t.Parallel()

		cfg := client.ResolveOptions(client.CORS(true))
		req, err := client.NewRequest(client.MethodPost, "http://example.com", nil, true, cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, "*", req.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, client.ModeCORS, req.Mode())
		assert.Equal(t, "cors", req.Mode())
	})

	t.Run("Extra headers override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := client.ResolveOptions(client.ExtraHeaders(map[string]string{"Accept": "text/html"}))
		req, err := client.NewRequest(client.MethodGet, "http://example.com", nil, false, cfg, nil)
		require.NoError(t, err)

		h := req.Header()
		assert.Equal(t, []string{"text/html"}, h.Values("Accept"))
		assert.Equal(t, "application/json", h.Get("Content-Type"))
	})

	t.Run("Extra headers match defaults case-insensitively", func(t *testing.T) {
		t.Parallel()

		cfg := client.ResolveOptions(client.ExtraHeaders(map[string]string{"content-type": "text/plain"}))
		req, err := client.NewRequest(client.MethodPost, "http://example.com", nil, true, cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"text/plain"}, req.Header().Values("Content-Type"))
	})

	t.Run("CORS header overrides extra headers", func(t *testing.T) {
		t.Parallel()

		cfg := client.ResolveOptions(
			client.CORS(true),
			client.ExtraHeaders(map[string]string{"Access-Control-Allow-Origin": "https://example.com"}),
		)
		req, err := client.NewRequest(client.MethodGet, "http://example.com", nil, false, cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, "*", req.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Default headers can be disabled", func(t *testing.T) {
		t.Parallel()

		cfg := client.ResolveOptions(
			client.UseDefaultHeaders(false),
			client.ExtraHeaders(map[string]string{"X-Custom": "1"}),
		)
		req, err := client.NewRequest(client.MethodGet, "http://example.com", nil, false, cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, http.Header{"X-Custom": []string{"1"}}, req.Header())
	})

	t.Run("Header returns a copy", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewRequest(client.MethodGet, "http://example.com", nil, false, client.DefaultConfig(), nil)
		require.NoError(t, err)

		req.Header().Set("Accept", "changed")
		assert.Equal(t, "application/json, text/plain, */*", req.Header().Get("Accept"))
	})

	t.Run("Header tables", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.Header{
			"Accept":       []string{"application/json, text/plain, */*"},
			"Content-Type": []string{"application/json"},
		}, client.DefaultHeaders())
		assert.Equal(t, http.Header{"Access-Control-Allow-Origin": []string{"*"}}, client.CORSHeaders())
	})
}

func TestRequestFingerprint(t *testing.T) {
	t.Parallel()

	build := func(method client.Method, payload client.Payload, inBody bool, opts ...client.ConfigOption) *client.Request {
		req, err := client.NewRequest(method, "http://example.com", payload, inBody, client.ResolveOptions(opts...), nil)
		require.NoError(t, err)
		return req
	}

	payload := client.NewPayload(client.Param{Key: "a", Value: 1})

	assert.Equal(t, build(client.MethodPost, payload, true).Fingerprint(), build(client.MethodPost, payload, true).Fingerprint())
	assert.NotEqual(t, build(client.MethodPost, payload, true).Fingerprint(), build(client.MethodPut, payload, true).Fingerprint())
	assert.NotEqual(t, build(client.MethodPost, payload, true).Fingerprint(), build(client.MethodPost, nil, true).Fingerprint())
	assert.NotEqual(t, build(client.MethodGet, nil, false).Fingerprint(), build(client.MethodGet, nil, false, client.CORS(true)).Fingerprint())
}

func TestRequestHTTPRequest(t *testing.T) {
	t.Parallel()

	t.Run("Converts method, URL, headers and body", func(t *testing.T) {
		t.Parallel()

		payload := client.NewPayload(client.Param{Key: "name", Value: "x"})
		req, err := client.NewRequest(client.MethodPut, "http://example.com/items/1", payload, true, client.DefaultConfig(), nil)
		require.NoError(t, err)

		httpReq, err := req.HTTPRequest(context.Background())
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, httpReq.Method)
		assert.Equal(t, "http://example.com/items/1", httpReq.URL.String())
		assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))

		body, err := io.ReadAll(httpReq.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"x"}`, string(body))
	})

	t.Run("Raw query is preserved", func(t *testing.T) {
		t.Parallel()

		payload := client.NewPayload(client.Param{Key: "q", Value: "a&b"})
		req, err := client.NewRequest(client.MethodGet, "http://example.com/search", payload, false, client.DefaultConfig(), nil)
		require.NoError(t, err)

		httpReq, err := req.HTTPRequest(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "q=a&b", httpReq.URL.RawQuery)
		assert.Nil(t, httpReq.Body)
	})

	t.Run("Invalid URL", func(t *testing.T) {
		t.Parallel()

		req, err := client.NewRequest(client.MethodGet, "://bad", nil, false, client.DefaultConfig(), nil)
		require.NoError(t, err)

		_, err = req.HTTPRequest(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, clientErrors.ErrRequestCreation)
	})
}
