// Package llm wraps the completion services askrepo can stream answers from.
//
// Every provider exposes the same pull-based Stream so the relay never has to
// know which SDK is behind it.
package llm

import "context"

// Request is everything a provider needs to open one streaming session.
type Request struct {
	SystemInstruction string
	UserMessage       string
	Model             string
	MaxTokens         int
}

// Stream is one open completion session. Next blocks until the next text
// increment is available and returns false once the session is exhausted or
// failed; Err tells which. Close must be called on every exit path.
type Stream interface {
	Next() bool
	Text() string
	Err() error
	Close() error
}

// Provider opens streaming sessions against one completion service.
// Implementations must be safe for concurrent use.
type Provider interface {
	OpenStream(ctx context.Context, req Request) (Stream, error)
	Close() error
}

// ModelConfig is the fixed model/parameter configuration of a Client.
type ModelConfig struct {
	Model     string
	MaxTokens int
}
