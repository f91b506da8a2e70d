package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash"
	"github.com/jaxron/requester/pkg/client/errors"
)

// Method is an HTTP verb supported by the client.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// ModeCORS is the request mode of cross-origin requests.
const ModeCORS = "cors"

type headerEntry struct {
	key   string
	value string
}

var (
	defaultHeaders = []headerEntry{
		{key: "Accept", value: "application/json, text/plain, */*"},
		{key: "Content-Type", value: "application/json"},
	}
	corsHeaders = []headerEntry{
		{key: "Access-Control-Allow-Origin", value: "*"},
	}
)

// DefaultHeaders returns the headers sent when UseDefaultHeaders is on.
func DefaultHeaders() http.Header {
	return entriesToHeader(defaultHeaders)
}

// CORSHeaders returns the headers added to cross-origin requests.
func CORSHeaders() http.Header {
	return entriesToHeader(corsHeaders)
}

func entriesToHeader(entries []headerEntry) http.Header {
	h := make(http.Header, len(entries))
	for _, e := range entries {
		h.Set(e.key, e.value)
	}
	return h
}

// Request describes one outbound call. It is built by NewRequest and not
// modified afterwards.
type Request struct {
	method Method
	url    string
	header http.Header
	mode   string
	body   []byte
}

// NewRequest builds the request for method and url from payload and cfg.
//
// When placeInBody is false the payload is appended to url as "?" followed by
// its query encoding, even when the payload is empty. Otherwise the url is
// kept as is and the payload is marshaled into the body with marshal, or
// with sonic when marshal is nil.
func NewRequest(method Method, url string, payload Payload, placeInBody bool, cfg Config, marshal MarshalFunc) (*Request, error) {
	if marshal == nil {
		marshal = sonic.Marshal
	}

	req := &Request{
		method: method,
		url:    url,
		header: mergeHeaders(cfg),
		mode:   "",
		body:   nil,
	}

	if cfg.CORS {
		req.mode = ModeCORS
	}

	if payload == nil {
		payload = Payload{}
	}

	if placeInBody {
		body, err := marshal(payload)
		if err != nil {
			return nil, err
		}
		req.body = body
	} else {
		req.url = url + "?" + payload.Encode()
	}

	return req, nil
}

// mergeHeaders applies default headers, then extra headers, then CORS
// headers. A later entry replaces an earlier one with the same canonical key.
func mergeHeaders(cfg Config) http.Header {
	h := make(http.Header)

	if cfg.UseDefaultHeaders {
		for _, e := range defaultHeaders {
			h.Set(e.key, e.value)
		}
	}

	// Sorted so that keys differing only in case resolve the same way every time.
	keys := make([]string, 0, len(cfg.ExtraHeaders))
	for k := range cfg.ExtraHeaders {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		h.Set(k, cfg.ExtraHeaders[k])
	}

	if cfg.CORS {
		for _, e := range corsHeaders {
			h.Set(e.key, e.value)
		}
	}

	return h
}

// Method returns the HTTP verb.
func (r *Request) Method() Method {
	return r.method
}

// URL returns the final URL, including the query string for reads.
func (r *Request) URL() string {
	return r.url
}

// Header returns a copy of the merged headers.
func (r *Request) Header() http.Header {
	return r.header.Clone()
}

// Mode returns ModeCORS for cross-origin requests and "" otherwise.
func (r *Request) Mode() string {
	return r.mode
}

// HasBody reports whether the payload was placed in the body.
func (r *Request) HasBody() bool {
	return r.body != nil
}

// Body returns a copy of the body, or nil when there is none.
func (r *Request) Body() []byte {
	if r.body == nil {
		return nil
	}
	return bytes.Clone(r.body)
}

// Fingerprint returns a hash of the method, URL, headers and body.
// Identical requests share a fingerprint.
func (r *Request) Fingerprint() string {
	h := xxhash.New()

	_, _ = io.WriteString(h, string(r.method))
	_, _ = io.WriteString(h, r.url)

	keys := make([]string, 0, len(r.header))
	for k := range r.header {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		_, _ = io.WriteString(h, k+fmt.Sprint(r.header[k]))
	}

	_, _ = io.WriteString(h, r.mode)
	_, _ = h.Write(r.body)

	return strconv.FormatUint(h.Sum64(), 16)
}

// HTTPRequest converts the descriptor into an *http.Request bound to ctx.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.method), r.url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRequestCreation, err)
	}
	req.Header = r.header.Clone()

	return req, nil
}
