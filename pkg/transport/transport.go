// Package transport plugs the interception engine into net/http as a
// RoundTripper, so any http.Client can have its outgoing requests
// answered from stubs.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/getmockd/httpstub/pkg/engine"
	"github.com/getmockd/httpstub/pkg/stub"
)

// Transport is the interception hook. Requests the engine handles are
// answered locally; everything else goes to the wrapped base transport
// (or the engine's passthrough override, when set).
type Transport struct {
	engine *engine.Engine
	base   http.RoundTripper
}

// New creates a Transport over base. A nil base falls back to
// http.DefaultTransport at call time.
func New(eng *engine.Engine, base http.RoundTripper) *Transport {
	return &Transport{engine: eng, base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.engine != nil && t.engine.Enabled() {
		r := engine.Request{
			Method: stub.Method(req.Method),
			URL:    req.URL.String(),
			Host:   req.URL.Hostname(),
		}
		if resp, ok := t.engine.Intercept(req.Context(), r); ok {
			return buildResponse(req, resp), nil
		}
		// A decline after the caller gave up must not hit the network.
		if err := req.Context().Err(); err != nil {
			return nil, err
		}
	}
	return t.next().RoundTrip(req)
}

// next picks the transport for unmocked requests: the engine's
// passthrough override, then the wrapped base, then the default.
func (t *Transport) next() http.RoundTripper {
	if t.engine != nil {
		if override := t.engine.Passthrough(); override != nil {
			return override
		}
	}
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}

// Base returns the wrapped transport as it was before activation.
func (t *Transport) Base() http.RoundTripper {
	return t.base
}

// buildResponse assembles an *http.Response from the engine's simulated
// response.
func buildResponse(req *http.Request, resp *engine.Response) *http.Response {
	header := make(http.Header, len(resp.Headers))
	for k, v := range resp.Headers {
		header.Set(k, v)
	}

	proto := "HTTP/" + resp.HTTPVersion
	major, minor, ok := http.ParseHTTPVersion(proto)
	if !ok {
		proto, major, minor = "HTTP/1.1", 1, 1
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		StatusCode:    resp.StatusCode,
		Proto:         proto,
		ProtoMajor:    major,
		ProtoMinor:    minor,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(resp.Body)),
		ContentLength: int64(len(resp.Body)),
		Request:       req,
	}
}

// Activate enables interception for client by wrapping its transport and
// switching the engine on. Activating an already-activated client is a
// no-op apart from the enable, so repeated calls never stack hooks.
func Activate(client *http.Client, eng *engine.Engine) {
	eng.SetEnabled(true)
	if _, installed := client.Transport.(*Transport); installed {
		return
	}
	client.Transport = New(eng, client.Transport)
}

// Deactivate removes the interception hook from client, restoring its
// original transport, and switches the engine off. Safe to call on a
// client that was never activated.
func Deactivate(client *http.Client) {
	t, installed := client.Transport.(*Transport)
	if !installed {
		return
	}
	client.Transport = t.base
	if t.engine != nil {
		t.engine.SetEnabled(false)
	}
}

var _ http.RoundTripper = (*Transport)(nil)
