package service

import (
	"context"
	"errors"

	"github.com/ahmednasr/askrepo/internal/llm"
)

// ErrInvalidInput is returned when the question or a prompt component is missing.
var ErrInvalidInput = errors.New("invalid input")

// ErrorKind is the failure taxonomy of one answer stream.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindClientUninitialized
	KindInvalidInput
	KindUpstream
	KindUnexpected
	// KindCancelled means the consumer went away; nothing is rendered for it.
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindClientUninitialized:
		return "client_uninitialized"
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream"
	case KindUnexpected:
		return "unexpected"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Classify maps an error onto the taxonomy.
func Classify(err error) ErrorKind {
	var ue *llm.UpstreamError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, llm.ErrNotInitialized):
		return KindClientUninitialized
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.As(err, &ue):
		return KindUpstream
	default:
		return KindUnexpected
	}
}
