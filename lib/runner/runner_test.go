package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasidev/trendpost/lib/logger"
	"github.com/jasidev/trendpost/lib/selector"
	"github.com/jasidev/trendpost/lib/types"
)

type fakeSourcer struct {
	topics []types.Topic
	err    error
}

func (f *fakeSourcer) Topics(ctx context.Context) ([]types.Topic, error) {
	return f.topics, f.err
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, topic types.Topic) (string, error) {
	return f.text, f.err
}

type fakePublisher struct {
	calls int
	urn   string
	err   error
}

func (f *fakePublisher) Publish(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.urn, f.err
}

type fakeStore struct {
	entries  []types.HistoryEntry
	appended []types.HistoryEntry
	loadErr  error
}

func (f *fakeStore) Load(ctx context.Context) ([]types.HistoryEntry, error) {
	return f.entries, f.loadErr
}

func (f *fakeStore) Append(ctx context.Context, entry types.HistoryEntry) error {
	f.appended = append(f.appended, entry)
	return nil
}

func newRunner(sourcer *fakeSourcer, pub *fakePublisher, store *fakeStore, dryRun bool) (*Runner, *bytes.Buffer) {
	out := new(bytes.Buffer)
	return &Runner{
		Sourcer:   sourcer,
		Generator: &fakeGenerator{text: "generated post text"},
		Publisher: pub,
		Store:     store,
		Window:    120 * 24 * time.Hour,
		DryRun:    dryRun,
		Out:       out,
		Log:       logger.NewDiscard(),
	}, out
}

func TestRunLivePublishesAndRecordsOnce(t *testing.T) {
	sourcer := &fakeSourcer{topics: []types.Topic{{Title: "Fresh topic about Go runtimes"}}}
	pub := &fakePublisher{urn: "urn:li:share:42"}
	store := &fakeStore{}
	r, _ := newRunner(sourcer, pub, store, false)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 1, pub.calls)
	require.Len(t, store.appended, 1)
	entry := store.appended[0]
	assert.Equal(t, "Fresh topic about Go runtimes", entry.Topic)
	assert.Equal(t, selector.Normalize("Fresh topic about Go runtimes"), entry.Normalized)
	assert.Equal(t, "generated post text", entry.Content)
	assert.Equal(t, "urn:li:share:42", entry.PostURN)
	assert.WithinDuration(t, time.Now().UTC(), entry.PostedAt, time.Minute)
}

func TestRunDryRunSkipsPublishAndHistory(t *testing.T) {
	sourcer := &fakeSourcer{topics: []types.Topic{{Title: "Fresh topic about Go runtimes"}}}
	pub := &fakePublisher{}
	store := &fakeStore{}
	r, out := newRunner(sourcer, pub, store, true)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 0, pub.calls)
	assert.Empty(t, store.appended)
	assert.Contains(t, out.String(), "generated post text")
	assert.Contains(t, out.String(), "Fresh topic about Go runtimes")
}

func TestRunDryRunWorksWithoutPublisher(t *testing.T) {
	sourcer := &fakeSourcer{topics: []types.Topic{{Title: "Fresh topic about Go runtimes"}}}
	store := &fakeStore{}
	r, _ := newRunner(sourcer, nil, store, true)
	r.Publisher = nil

	require.NoError(t, r.Run(context.Background()))
	assert.Empty(t, store.appended)
}

func TestRunNoCandidatesAborts(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	r, _ := newRunner(&fakeSourcer{}, pub, store, false)

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoCandidates)
	assert.Equal(t, 0, pub.calls)
	assert.Empty(t, store.appended)
}

func TestRunAllCandidatesRecentAborts(t *testing.T) {
	sourcer := &fakeSourcer{topics: []types.Topic{{Title: "A topic posted yesterday already"}}}
	store := &fakeStore{entries: []types.HistoryEntry{{
		Topic:      "A topic posted yesterday already",
		Normalized: selector.Normalize("A topic posted yesterday already"),
		PostedAt:   time.Now().Add(-24 * time.Hour),
	}}}
	r, _ := newRunner(sourcer, &fakePublisher{}, store, false)

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoCandidates)
}

func TestRunSourcingFailureAborts(t *testing.T) {
	sourceErr := errors.New("feed unreachable")
	pub := &fakePublisher{}
	store := &fakeStore{}
	r, _ := newRunner(&fakeSourcer{err: sourceErr}, pub, store, false)

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, sourceErr)
	assert.Equal(t, 0, pub.calls)
	assert.Empty(t, store.appended)
}

func TestRunGenerationFailureAborts(t *testing.T) {
	genErr := errors.New("model unavailable")
	pub := &fakePublisher{}
	store := &fakeStore{}
	r, _ := newRunner(&fakeSourcer{topics: []types.Topic{{Title: "Some eligible topic here"}}}, pub, store, false)
	r.Generator = &fakeGenerator{err: genErr}

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, genErr)
	assert.Equal(t, 0, pub.calls)
	assert.Empty(t, store.appended)
}

func TestRunPublishFailureRecordsNothing(t *testing.T) {
	pubErr := errors.New("rate limited")
	pub := &fakePublisher{err: pubErr}
	store := &fakeStore{}
	r, _ := newRunner(&fakeSourcer{topics: []types.Topic{{Title: "Some eligible topic here"}}}, pub, store, false)

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, pubErr)
	assert.Empty(t, store.appended)
}
