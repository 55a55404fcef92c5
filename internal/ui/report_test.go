package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leanpub-multi-action/leanpub-multi-action/internal/leanpub"
)

func newTestReporter() (*Reporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewReporter(&out, &errOut, "Nightfox"), &out, &errOut
}

func TestReporter_PreviewTriggered(t *testing.T) {
	r, out, errOut := newTestReporter()

	r.PreviewTriggered("my-book", &leanpub.Response{StatusCode: 200, Body: `{"success":true}`})

	assert.Contains(t, out.String(), "Preview of")
	assert.Contains(t, out.String(), "my-book")
	assert.Contains(t, out.String(), "HTTP 200")
	assert.Contains(t, out.String(), `{"success":true}`)
	assert.Empty(t, errOut.String())
}

func TestReporter_ConfigurationError(t *testing.T) {
	r, out, errOut := newTestReporter()

	r.Failure(&leanpub.ConfigurationError{Field: "book slug", Err: leanpub.ErrMissingBookSlug})

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Missing configuration: leanpub book slug is required")
	assert.Contains(t, errOut.String(), "LEANPUB_BOOK_SLUG")
}

func TestReporter_RemoteUnauthorized(t *testing.T) {
	r, _, errOut := newTestReporter()

	r.Failure(fmt.Errorf("preview: %w", &leanpub.RemoteError{StatusCode: 401, Body: "bad key"}))

	assert.Contains(t, errOut.String(), "Leanpub rejected the request (HTTP 401)")
	assert.Contains(t, errOut.String(), "bad key")
	assert.Contains(t, errOut.String(), "API key")
}

func TestReporter_TransportError(t *testing.T) {
	r, _, errOut := newTestReporter()

	r.Failure(&leanpub.TransportError{URL: "https://leanpub.com/b/preview.json", Err: syscall.ECONNREFUSED})
	assert.Contains(t, errOut.String(), "Could not reach Leanpub")
	assert.Contains(t, errOut.String(), syscall.ECONNREFUSED.Error())

	errOut.Reset()
	r.Failure(&leanpub.TransportError{URL: "u", Err: context.DeadlineExceeded})
	assert.Contains(t, errOut.String(), "Timed out waiting for Leanpub")
}

func TestReporter_GenericAndNil(t *testing.T) {
	r, out, errOut := newTestReporter()

	r.Failure(nil)
	assert.Empty(t, errOut.String())

	r.Failure(errors.New("no action selected"))
	assert.Contains(t, errOut.String(), "no action selected")
	assert.Empty(t, out.String())
}

func TestReporter_Version(t *testing.T) {
	r, out, _ := newTestReporter()
	r.Version("leanpub-multi-action", "v1.2.3")
	assert.Contains(t, out.String(), "leanpub-multi-action")
	assert.Contains(t, out.String(), "v1.2.3")
}
