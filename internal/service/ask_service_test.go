package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/models"
)

type fakeCorpus struct {
	corpus models.Corpus
	err    error
	calls  int
}

func (f *fakeCorpus) Snapshot(ctx context.Context) (models.Corpus, error) {
	f.calls++
	return f.corpus, f.err
}

func TestAskService_EndToEnd(t *testing.T) {
	corpus := &fakeCorpus{corpus: acmeCorpus()}
	stream := chunks("<contributor id=\"7\">bob</contributor>", " fixed it.")
	relay, p := newFakeRelay(stream)
	svc := NewAskService(corpus, relay, zap.NewNop())

	seq, err := svc.Ask(context.Background(), "Who fixed the crash?")
	require.NoError(t, err)
	got := drain(seq)

	assert.Equal(t, []string{"<contributor id=\"7\">bob</contributor>", " fixed it."}, got)
	assert.Equal(t, 1, corpus.calls)
	require.Equal(t, 1, p.opens)
	assert.Equal(t, SystemInstructionV1, p.got.SystemInstruction)
	assert.Contains(t, p.got.UserMessage, "### Repository: Acme (ID: 1)")
	assert.Contains(t, p.got.UserMessage, "- **Repository:** Acme")
	assert.Contains(t, p.got.UserMessage, "### Contributor: bob (ID: 7)")
	assert.Contains(t, p.got.UserMessage, "**Work Summary:** fixed bugs")
	assert.Contains(t, p.got.UserMessage, "      - fix crash")
	assert.True(t, strings.HasSuffix(p.got.UserMessage, "Who fixed the crash?"))
}

func TestAskService_EmptyQuestionSkipsCorpus(t *testing.T) {
	corpus := &fakeCorpus{corpus: acmeCorpus()}
	relay, p := newFakeRelay(chunks("never"))
	svc := NewAskService(corpus, relay, zap.NewNop())

	seq, err := svc.Ask(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{MsgNoPrompt}, drain(seq))
	assert.Zero(t, corpus.calls)
	assert.Zero(t, p.opens)
}

func TestAskService_CorpusFailureIsSynchronous(t *testing.T) {
	corpus := &fakeCorpus{err: errors.New("server selection timeout")}
	relay, p := newFakeRelay(chunks("never"))
	svc := NewAskService(corpus, relay, zap.NewNop())

	seq, err := svc.Ask(context.Background(), "Who?")

	assert.Nil(t, seq)
	assert.ErrorContains(t, err, "server selection timeout")
	assert.Zero(t, p.opens)
}

func TestAskService_FreshSnapshotPerQuestion(t *testing.T) {
	corpus := &fakeCorpus{corpus: acmeCorpus()}
	relay, _ := newFakeRelay(chunks())
	svc := NewAskService(corpus, relay, zap.NewNop())

	for i := 0; i < 3; i++ {
		seq, err := svc.Ask(context.Background(), "Who?")
		require.NoError(t, err)
		drain(seq)
	}

	assert.Equal(t, 3, corpus.calls)
	assert.True(t, svc.Ready())
	assert.Equal(t, "Claude", svc.Service())
}

func TestCorpusService_NeverNilSlices(t *testing.T) {
	svc := NewCorpusService(&fakeCorpus{})

	corpus, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, corpus.Repositories)
	assert.NotNil(t, corpus.Contributors)

	_, err = NewCorpusService(&fakeCorpus{err: errors.New("down")}).Snapshot(context.Background())
	assert.Error(t, err)
}
