package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/stats"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var guideMarkdown = []byte("# Guide\n\nSome body text that runs long.\n\n## Setup Steps\n")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestWorker() (*Worker, *stats.Recorder) {
	rec := stats.NewRecorder(time.Hour)
	cache := gocache.New(time.Hour, time.Minute)
	return NewWorker(outline.DefaultPolicy(), cache, rec, discardLogger()), rec
}

func TestWorker_ProcessCompletes(t *testing.T) {
	w, rec := newTestWorker()
	job := NewJob("guide.md", guideMarkdown)

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status, "errors: %v", snap.Errors)
	o, ok := job.Result()
	require.True(t, ok)
	assert.Equal(t, "Guide", o.Title)
	require.NotEmpty(t, o.Entries)
	assert.Equal(t, outline.Entry{Text: "Guide", Level: outline.H1, Page: 1}, o.Entries[0])
	assert.Equal(t, 1, rec.Snapshot().Count)
}

func TestWorker_CacheHit(t *testing.T) {
	w, rec := newTestWorker()

	first := NewJob("guide.md", guideMarkdown)
	w.Process(context.Background(), first)
	second := NewJob("copy.md", guideMarkdown)
	w.Process(context.Background(), second)

	assert.Equal(t, StatusCompleted, first.Snapshot().Status)
	assert.Equal(t, StatusCached, second.Snapshot().Status)
	a, _ := first.Result()
	b, _ := second.Result()
	assert.Equal(t, a, b)
	// Only the first extraction was timed.
	assert.Equal(t, 1, rec.Snapshot().Count)
}

func TestWorker_CacheKeyIncludesExtension(t *testing.T) {
	assert.NotEqual(t, cacheKey(guideMarkdown, "a.md"), cacheKey(guideMarkdown, "a.html"))
	assert.Equal(t, cacheKey(guideMarkdown, "a.MD"), cacheKey(guideMarkdown, "b.md"))
}

func TestWorker_UnreadableFails(t *testing.T) {
	w, rec := newTestWorker()
	job := NewJob("broken.pdf", []byte("not a pdf"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "parsing", snap.Phase)
	require.Len(t, snap.Errors, 1)
	assert.Contains(t, snap.Errors[0], "document unreadable")
	assert.Equal(t, 1, rec.Snapshot().Failed)
}

func TestWorker_Extract(t *testing.T) {
	w, _ := newTestWorker()

	_, _, err := w.Extract([]byte("x"), "sheet.csv")
	assert.ErrorIs(t, err, parser.ErrUnsupported)

	_, _, err = w.Extract([]byte("junk"), "broken.docx")
	assert.ErrorIs(t, err, parser.ErrUnreadable)

	o, cached, err := w.Extract(guideMarkdown, "guide.md")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "Guide", o.Title)

	_, cached, err = w.Extract(guideMarkdown, "guide.md")
	require.NoError(t, err)
	assert.True(t, cached)
}

func TestOrchestrator_SubmitAndProcess(t *testing.T) {
	cfg := config.ServerConfig{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour, CacheTTL: time.Hour}
	o := NewOrchestrator(cfg, outline.DefaultPolicy(), discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("guide.md", guideMarkdown)
	require.NoError(t, o.Submit(job))
	assert.Same(t, job, o.GetJob(job.ID))

	require.Eventually(t, func() bool {
		return job.Snapshot().Status.Done()
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, StatusCompleted, job.Snapshot().Status)

	st := o.Stats()
	assert.Equal(t, 4, st.QueueCapacity)
	assert.Equal(t, 2, st.Workers)
	assert.Equal(t, 1, st.Jobs)
	assert.Equal(t, 1, st.CachedResults)
	assert.Equal(t, 1, st.Extraction.Count)
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.ServerConfig{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour, CacheTTL: time.Hour}
	o := NewOrchestrator(cfg, outline.DefaultPolicy(), discardLogger())
	// Not started: nothing drains the queue.

	require.NoError(t, o.Submit(NewJob("a.md", guideMarkdown)))
	overflow := NewJob("b.md", guideMarkdown)
	err := o.Submit(overflow)
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, StatusFailed, overflow.Snapshot().Status)

	o.Stop()
	assert.ErrorIs(t, o.Submit(NewJob("c.md", guideMarkdown)), ErrStopped)
	o.Stop()
}
