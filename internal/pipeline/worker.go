package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/stats"
	gocache "github.com/patrickmn/go-cache"
)

// Worker turns uploaded documents into outlines. Finished outlines are
// cached by content hash and extension, so a repeated upload skips parsing.
type Worker struct {
	policy outline.Policy
	cache  *gocache.Cache
	stats  *stats.Recorder
	log    *slog.Logger
}

func NewWorker(policy outline.Policy, cache *gocache.Cache, rec *stats.Recorder, log *slog.Logger) *Worker {
	return &Worker{
		policy: policy,
		cache:  cache,
		stats:  rec,
		log:    log,
	}
}

// Process runs the extraction for a queued job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.Fail("queued", err)
		return
	}

	o, cached, err := w.run(job.FileData(), job.Filename, job.SetStatus)
	if err != nil {
		phase := job.Snapshot().Phase
		log.Error("extraction failed", "phase", phase, "error", err)
		job.Fail(phase, err)
		return
	}

	job.Finish(o, cached)
	log.Info("outline ready", "title", o.Title, "entries", len(o.Entries), "cached", cached)
}

// Extract runs the same cached extraction synchronously.
func (w *Worker) Extract(data []byte, filename string) (outline.Outline, bool, error) {
	return w.run(data, filename, nil)
}

func (w *Worker) run(data []byte, filename string, phase func(JobStatus, string)) (outline.Outline, bool, error) {
	key := cacheKey(data, filename)
	if v, ok := w.cache.Get(key); ok {
		return v.(outline.Outline), true, nil
	}

	start := time.Now()
	o, err := w.extract(data, filename, phase)
	if w.stats != nil {
		w.stats.Observe(time.Since(start), err)
	}
	if err != nil {
		return outline.Outline{}, false, err
	}

	w.cache.SetDefault(key, o)
	return o, false, nil
}

func (w *Worker) extract(data []byte, filename string, phase func(JobStatus, string)) (outline.Outline, error) {
	if phase == nil {
		phase = func(JobStatus, string) {}
	}

	phase(StatusParsing, "parsing")
	p, err := parser.ForFile(filename)
	if err != nil {
		return outline.Outline{}, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return outline.Outline{}, fmt.Errorf("parse %s: %w", filename, err)
	}

	phase(StatusClassifying, "classifying")
	return w.policy.Build(doc), nil
}

func cacheKey(data []byte, filename string) string {
	return ContentHashHex(data) + strings.ToLower(filepath.Ext(filename))
}
