package llm

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
)

// ErrNotInitialized is returned by Client.Open when the client failed to initialise.
var ErrNotInitialized = errors.New("completion client not initialized")

// ErrMissingAPIKey marks a provider that cannot be built without credentials.
var ErrMissingAPIKey = errors.New("api key is not configured")

// UpstreamError is a failure reported by, or on the way to, the completion service:
// API errors, auth and quota failures, malformed requests, transport failures.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// upstreamError wraps err as an *UpstreamError when isAPIError or the transport
// recognise it. Cancellation and unrecognised errors are returned unchanged.
func upstreamError(service string, err error, isAPIError func(error) bool) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	if (isAPIError != nil && isAPIError(err)) || isTransportError(err) {
		return &UpstreamError{Service: service, Err: err}
	}
	return err
}

// sseStreamError reports every SDK event-stream failure as upstream. The
// stream only fails on an HTTP error status, an error event sent mid-stream
// (delivered as a plain "received error while streaming" error) or a broken
// connection; cancellation is filtered out before this is consulted.
func sseStreamError(error) bool {
	return true
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
