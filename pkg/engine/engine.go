// Package engine implements the per-request interception decision: given
// an outgoing request, either produce a simulated response from a
// registered stub rule or decline so the real network call proceeds.
package engine

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/httpstub/pkg/hostfilter"
	"github.com/getmockd/httpstub/pkg/logging"
	"github.com/getmockd/httpstub/pkg/payload"
	"github.com/getmockd/httpstub/pkg/stub"
)

// Rules is the registry surface the engine needs. *registry.Registry
// implements it.
type Rules interface {
	// Find returns the rule for (method, url) without filtering on its
	// Enabled flag.
	Find(url string, method stub.Method) (stub.Rule, bool)
}

// Request is the subset of an outgoing HTTP request the engine inspects.
type Request struct {
	Method stub.Method
	URL    string
	Host   string
}

// Response is a simulated response assembled from a matched rule.
type Response struct {
	StatusCode  int
	Headers     map[string]string
	HTTPVersion string
	Body        []byte
}

// Engine decides per request whether to answer from a stub. It also owns
// the lifecycle state: the global enabled switch, the host filter, and an
// optional passthrough transport consulted when a request is not mocked.
//
// Engine is safe for concurrent use; it is invoked once per in-flight
// request.
type Engine struct {
	mu          sync.RWMutex
	enabled     bool
	passthrough http.RoundTripper

	rules    Rules
	hosts    *hostfilter.Filter
	payloads *payload.Source
	log      *slog.Logger
}

// New creates a disabled Engine over the given rules, host filter, and
// payload source.
func New(rules Rules, hosts *hostfilter.Filter, payloads *payload.Source) *Engine {
	if hosts == nil {
		hosts = hostfilter.New()
	}
	return &Engine{
		rules:    rules,
		hosts:    hosts,
		payloads: payloads,
		log:      logging.Nop(),
	}
}

// SetLogger sets the logger. A nil logger is ignored.
func (e *Engine) SetLogger(log *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if log != nil {
		e.log = log
	}
}

// SetEnabled toggles interception globally. Changes take effect on the
// next Intercept call.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// Enabled reports whether interception is active.
func (e *Engine) Enabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetPassthrough sets the transport used for requests the engine declines.
// Nil restores the transport hook's own default.
func (e *Engine) SetPassthrough(rt http.RoundTripper) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.passthrough = rt
}

// Passthrough returns the configured passthrough transport, or nil.
func (e *Engine) Passthrough() http.RoundTripper {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.passthrough
}

// Hosts returns the engine's host filter for configuration.
func (e *Engine) Hosts() *hostfilter.Filter {
	return e.hosts
}

// Intercept evaluates req against the lifecycle state and registered
// rules. It returns (response, true) when the request is handled and
// (nil, false) otherwise.
//
// Every failure mode declines rather than erroring: a missing or unreadable
// payload fixture must never break the host application's request flow, it
// only means this request goes to the real network.
func (e *Engine) Intercept(ctx context.Context, req Request) (*Response, bool) {
	e.mu.RLock()
	enabled := e.enabled
	log := e.log
	e.mu.RUnlock()

	// The transport hook checks the switch before calling in, but a
	// disabled engine must decline regardless of who asks.
	if !enabled {
		return nil, false
	}

	if !e.hosts.IsAllowed(req.Host) {
		log.Debug("host not eligible for interception", "host", req.Host)
		return nil, false
	}

	rule, ok := e.rules.Find(req.URL, req.Method)
	if !ok {
		return nil, false
	}
	if !rule.Enabled {
		log.Debug("matching rule is disabled", "method", req.Method, "url", req.URL)
		return nil, false
	}

	body, err := e.payloads.Resolve(rule.Source)
	if err != nil {
		// Both a missing and a broken fixture degrade to the real
		// network path, never to a hard error.
		log.Warn("stub payload unavailable, request not mocked",
			"method", req.Method, "url", req.URL, "source", rule.Source, "error", err)
		return nil, false
	}

	if rule.Delay > 0 {
		select {
		case <-ctx.Done():
			// Caller abandoned the request during the artificial
			// delay; the result would be discarded anyway.
			return nil, false
		case <-time.After(rule.Delay):
		}
	}

	log.Debug("request answered from stub",
		"method", req.Method, "url", req.URL, "status", rule.StatusCode)

	return &Response{
		StatusCode:  rule.StatusCode,
		Headers:     copyHeaders(rule.Headers),
		HTTPVersion: rule.HTTPVersion,
		Body:        body,
	}, true
}

// copyHeaders returns a non-nil copy so the caller can decorate the
// response without mutating the registered rule.
func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
