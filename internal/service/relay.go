package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/llm"
)

// MsgNoPrompt is the single increment emitted for an empty prompt pair.
const MsgNoPrompt = "Error: No prompt provided."

// Relay drives one completion session per call and exposes it as a lazy,
// single-pass sequence of text increments.
type Relay struct {
	client *llm.Client
	l      *zap.Logger
}

// NewRelay wires the process-wide completion client into a relay.
func NewRelay(client *llm.Client, l *zap.Logger) *Relay {
	return &Relay{
		client: client,
		l:      l.With(zap.String("component", "relay")),
	}
}

// Service is the user-facing name of the completion service.
func (r *Relay) Service() string {
	return r.client.Service()
}

// Ready reports whether the completion client initialised.
func (r *Relay) Ready() bool {
	return r.client.Ready()
}

// Stream returns the answer to pair as a sequence of increments.
//
// Nothing happens until the sequence is ranged over. The upstream session is
// advanced only when the consumer asks for the next increment, and is closed
// when the consumer stops, ctx is cancelled, or the session ends. Failures
// after the first increment never end the sequence abruptly: they are
// appended as a final diagnostic increment.
func (r *Relay) Stream(ctx context.Context, pair PromptPair) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !r.client.Ready() {
			r.l.Warn("completion client not initialized", zap.Error(r.client.InitErr()))
			yield(fmt.Sprintf("Error: %s client not initialized. Check API key.", r.client.Service()))
			return
		}
		if pair.SystemInstruction == "" || pair.UserMessage == "" {
			yield(MsgNoPrompt)
			return
		}

		l := r.l.With(zap.String("stream_id", uuid.NewString()[:8]))
		start := time.Now()
		sent := 0

		stream, err := r.client.Open(ctx, pair.SystemInstruction, pair.UserMessage)
		if err == nil {
			defer func() {
				if cerr := stream.Close(); cerr != nil {
					l.Warn("closing upstream stream", zap.Error(cerr))
				}
			}()
			err = r.pump(stream, yield, &sent)
		}

		kind := Classify(err)
		if errors.Is(err, errConsumerGone) || errors.Is(ctx.Err(), context.Canceled) {
			kind = KindCancelled
		}

		fields := []zap.Field{
			zap.String("outcome", kind.String()),
			zap.Int("increments", sent),
			zap.Duration("duration", time.Since(start)),
		}
		switch kind {
		case KindNone:
			l.Info("stream completed", fields...)
		case KindCancelled:
			l.Info("stream cancelled by consumer", fields...)
		case KindUpstream:
			l.Error("upstream error during stream", append(fields, zap.Error(err))...)
			yield(fmt.Sprintf("\n\nError communicating with %s: %s", r.client.Service(), err.Error()))
		default:
			l.Error("unexpected error during stream", append(fields, zap.Error(err))...)
			yield(fmt.Sprintf("\n\nAn unexpected error occurred: %s", err.Error()))
		}
	}
}

// errConsumerGone marks a consumer that stopped ranging over the sequence.
var errConsumerGone = errors.New("consumer stopped reading")

// pump forwards increments until the stream ends, fails, or the consumer stops.
func (r *Relay) pump(stream llm.Stream, yield func(string) bool, sent *int) error {
	for {
		more, err := next(stream)
		if err != nil {
			return err
		}
		if !more {
			return stream.Err()
		}
		text := stream.Text()
		if text == "" {
			continue
		}
		if !yield(text) {
			return errConsumerGone
		}
		*sent++
	}
}

// next advances the stream, turning a panic inside the provider into an error.
func next(stream llm.Stream) (more bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return stream.Next(), nil
}
