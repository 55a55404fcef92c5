package leanpub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type capturedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// stubClient returns an http.Client whose transport records every request and
// answers with the given status and body.
func stubClient(t *testing.T, status int, body string) (*http.Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		captured = append(captured, capturedRequest{
			Method: r.Method,
			URL:    r.URL.String(),
			Header: r.Header.Clone(),
			Body:   data,
		})
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	})}
	return hc, &captured
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		c, err := NewClient(key)
		assert.Nil(t, c)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	}
}

func TestPreview_SendsExactURLAndBody(t *testing.T) {
	hc, captured := stubClient(t, http.StatusOK, "ok")
	c, err := NewClient(" key with spaces ", WithHTTPClient(hc))
	require.NoError(t, err)

	outcome := c.Preview(context.Background(), "my-book")
	require.True(t, outcome.OK(), "outcome error: %v", outcome.Err)
	require.Len(t, *captured, 1)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://leanpub.com/my-book/preview.json", req.URL)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "leanpub-multi-action/"))
	assert.JSONEq(t, `{"api_key": " key with spaces "}`, string(req.Body))
}

func TestPreview_EscapesSlugIntoSinglePathSegment(t *testing.T) {
	hc, captured := stubClient(t, http.StatusOK, "ok")
	c, err := NewClient("key", WithHTTPClient(hc))
	require.NoError(t, err)

	c.Preview(context.Background(), "../other/book")
	require.Len(t, *captured, 1)
	assert.Equal(t, "https://leanpub.com/..%2Fother%2Fbook/preview.json", (*captured)[0].URL)
}

func TestPreview_EmptySlugMakesNoRequest(t *testing.T) {
	hc, captured := stubClient(t, http.StatusOK, "ok")
	c, err := NewClient("key", WithHTTPClient(hc))
	require.NoError(t, err)

	for _, slug := range []string{"", " \t"} {
		outcome := c.Preview(context.Background(), slug)
		assert.False(t, outcome.OK())
		assert.Nil(t, outcome.Response)

		var cfgErr *ConfigurationError
		assert.ErrorAs(t, outcome.Err, &cfgErr)
		assert.ErrorIs(t, outcome.Err, ErrMissingBookSlug)
	}
	assert.Empty(t, *captured)
}

func TestPreview_SuccessPassesStatusAndBodyThrough(t *testing.T) {
	hc, _ := stubClient(t, http.StatusOK, "ok")
	c, err := NewClient("key", WithHTTPClient(hc))
	require.NoError(t, err)

	outcome := c.Preview(context.Background(), "book")
	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Response)
	assert.Equal(t, 200, outcome.Response.StatusCode)
	assert.Equal(t, "ok", outcome.Response.Body)
}

func TestPreview_ErrorStatusIsRemoteError(t *testing.T) {
	for _, tc := range []struct {
		status int
		body   string
	}{
		{http.StatusUnauthorized, ""},
		{http.StatusUnauthorized, `{"success": true}`},
		{http.StatusNotFound, "no such book"},
		{http.StatusInternalServerError, "boom"},
	} {
		hc, _ := stubClient(t, tc.status, tc.body)
		c, err := NewClient("key", WithHTTPClient(hc))
		require.NoError(t, err)

		outcome := c.Preview(context.Background(), "book")
		assert.False(t, outcome.OK())
		assert.Nil(t, outcome.Response)

		var remote *RemoteError
		require.ErrorAs(t, outcome.Err, &remote)
		assert.Equal(t, tc.status, remote.StatusCode)
		assert.Equal(t, tc.body, remote.Body)
	}
}

func TestRemoteError_Unauthorized(t *testing.T) {
	assert.True(t, (&RemoteError{StatusCode: 401}).Unauthorized())
	assert.True(t, (&RemoteError{StatusCode: 403}).Unauthorized())
	assert.False(t, (&RemoteError{StatusCode: 500}).Unauthorized())
	assert.Equal(t, "leanpub returned status 500", (&RemoteError{StatusCode: 500}).Error())
	assert.Equal(t, "leanpub returned status 404: missing", (&RemoteError{StatusCode: 404, Body: "missing\n"}).Error())
}

func TestPreview_ConnectionRefusedIsTransportError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, refused
	})}
	c, err := NewClient("key", WithHTTPClient(hc))
	require.NoError(t, err)

	outcome := c.Preview(context.Background(), "book")
	assert.False(t, outcome.OK())
	assert.Nil(t, outcome.Response)

	var transport *TransportError
	require.ErrorAs(t, outcome.Err, &transport)
	assert.ErrorIs(t, outcome.Err, syscall.ECONNREFUSED)
	assert.Equal(t, "https://leanpub.com/book/preview.json", transport.URL)
	assert.False(t, transport.Timeout())
}

func TestPreview_DeadlineIsTimeout(t *testing.T) {
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})}
	c, err := NewClient("key", WithHTTPClient(hc))
	require.NoError(t, err)

	outcome := c.Preview(context.Background(), "book")
	var transport *TransportError
	require.ErrorAs(t, outcome.Err, &transport)
	assert.True(t, transport.Timeout())
}

func TestPreview_IdenticalCallsAreIndependent(t *testing.T) {
	hc, captured := stubClient(t, http.StatusOK, "ok")
	c, err := NewClient("key", WithHTTPClient(hc))
	require.NoError(t, err)

	first := c.Preview(context.Background(), "book")
	second := c.Preview(context.Background(), "book")

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.NotSame(t, first.Response, second.Response)
	assert.Len(t, *captured, 2)
}

func TestPreview_AgainstHTTPServer(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		r.URL.Scheme = target.Scheme
		r.URL.Host = target.Host
		return http.DefaultTransport.RoundTrip(r)
	})}

	c, err := NewClient("secret", WithHTTPClient(hc), WithUserAgent("tests/1.0"))
	require.NoError(t, err)

	outcome := c.Preview(context.Background(), "the-book")
	require.True(t, outcome.OK(), "outcome error: %v", outcome.Err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "/the-book/preview.json", gotPath)
	assert.Equal(t, map[string]string{"api_key": "secret"}, gotBody)
	assert.Equal(t, `{"success":true}`, outcome.Response.Body)
}

func TestPreview_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := NewClient("key")
	require.NoError(t, err)

	outcome := c.Preview(ctx, "book")
	assert.False(t, outcome.OK())
	assert.True(t, errors.Is(outcome.Err, context.Canceled), "err = %v", outcome.Err)
}

func TestPreview_NilClient(t *testing.T) {
	var c *Client
	outcome := c.Preview(context.Background(), "book")
	assert.False(t, outcome.OK())
	assert.Error(t, outcome.Err)
}
