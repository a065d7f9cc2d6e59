package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/httpstub/pkg/engine"
	"github.com/getmockd/httpstub/pkg/hostfilter"
	"github.com/getmockd/httpstub/pkg/payload"
	"github.com/getmockd/httpstub/pkg/registry"
	"github.com/getmockd/httpstub/pkg/stub"
)

func newEngine(fixtures map[string][]byte) (*engine.Engine, *registry.Registry) {
	reg := registry.New()
	eng := engine.New(reg, hostfilter.New(), payload.NewSource(payload.NewMapLoader(fixtures)))
	return eng, reg
}

func TestTransport_StubbedRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	eng, reg := newEngine(map[string][]byte{"users.json": []byte(`[]`)})

	rule := stub.New(stub.MethodGet, server.URL+"/users", "users.json")
	rule.StatusCode = 201
	rule.Headers = map[string]string{"Content-Type": "application/json"}
	reg.Register(rule)

	client := server.Client()
	Activate(client, eng)
	defer Deactivate(client)

	resp, err := client.Get(server.URL + "/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, []byte(`[]`), body)
	assert.Equal(t, "HTTP/1.1", resp.Proto)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.EqualValues(t, 2, resp.ContentLength)
}

func TestTransport_UnmatchedFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	eng, _ := newEngine(nil)

	client := server.Client()
	Activate(client, eng)
	defer Deactivate(client)

	resp, err := client.Get(server.URL + "/users")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestTransport_DisabledFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	eng, reg := newEngine(map[string][]byte{"users.json": []byte(`[]`)})
	reg.Register(stub.New(stub.MethodGet, server.URL+"/users", "users.json"))

	client := server.Client()
	Activate(client, eng)
	defer Deactivate(client)

	eng.SetEnabled(false)

	resp, err := client.Get(server.URL + "/users")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestTransport_BrokenFixtureFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	// Rule references a fixture the loader does not have.
	eng, reg := newEngine(nil)
	reg.Register(stub.New(stub.MethodGet, server.URL+"/users", "users.json"))

	client := server.Client()
	Activate(client, eng)
	defer Deactivate(client)

	resp, err := client.Get(server.URL + "/users")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestActivate_Idempotent(t *testing.T) {
	eng, _ := newEngine(nil)
	client := &http.Client{}

	Activate(client, eng)
	first := client.Transport
	Activate(client, eng)

	// A second activation must not stack another hook.
	assert.Same(t, first, client.Transport)

	hook, ok := client.Transport.(*Transport)
	require.True(t, ok)
	assert.Nil(t, hook.Base())
}

func TestDeactivate_RestoresOriginalTransport(t *testing.T) {
	eng, _ := newEngine(nil)
	orig := &http.Transport{}
	client := &http.Client{Transport: orig}

	Activate(client, eng)
	require.True(t, eng.Enabled())

	Deactivate(client)
	assert.Same(t, http.RoundTripper(orig), client.Transport)
	assert.False(t, eng.Enabled())

	// Deactivating a plain client is harmless.
	Deactivate(client)
	assert.Same(t, http.RoundTripper(orig), client.Transport)
}

func TestTransport_PassthroughOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	eng, _ := newEngine(nil)
	eng.SetEnabled(true)

	var used bool
	override := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		used = true
		return http.DefaultTransport.RoundTrip(r)
	})
	eng.SetPassthrough(override)

	hook := New(eng, nil)
	req, err := http.NewRequest(http.MethodGet, server.URL+"/users", nil)
	require.NoError(t, err)

	resp, err := hook.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.True(t, used)
}

func TestTransport_UnknownHTTPVersionFallsBack(t *testing.T) {
	eng, reg := newEngine(map[string][]byte{"users.json": []byte(`[]`)})
	eng.SetEnabled(true)

	rule := stub.New(stub.MethodGet, "https://api.test/users", "users.json")
	rule.HTTPVersion = "banana"
	reg.Register(rule)

	hook := New(eng, nil)
	req, err := http.NewRequest(http.MethodGet, "https://api.test/users", nil)
	require.NoError(t, err)

	resp, err := hook.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "HTTP/1.1", resp.Proto)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
