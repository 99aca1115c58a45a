package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h := ContentHashHex([]byte{}); h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("report.pdf", []byte("hello world"))
	if job.ID == "" {
		t.Fatal("expected a job ID")
	}
	if other := NewJob("report.pdf", []byte("hello world")); other.ID == job.ID {
		t.Error("expected distinct job IDs")
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if job.ContentHash != ContentHashHex([]byte("hello world")) {
		t.Errorf("unexpected content hash %q", job.ContentHash)
	}
	if string(job.FileData()) != "hello world" {
		t.Errorf("unexpected file data %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("a.md", nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusClassifying, "classifying"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
		if job.Status.Done() {
			t.Errorf("status %q should not be terminal", tr.status)
		}
	}
}

func TestJob_Finish(t *testing.T) {
	job := NewJob("a.md", []byte("# A"))
	if _, ok := job.Result(); ok {
		t.Fatal("expected no result before Finish")
	}

	o := outline.Outline{Title: "Guide", Entries: []outline.Entry{{Text: "Guide", Level: outline.H1, Page: 1}}}
	job.Finish(o, false)

	got, ok := job.Result()
	if !ok || got.Title != "Guide" {
		t.Fatalf("expected finished outline, got %+v (ok=%v)", got, ok)
	}
	if job.Status != StatusCompleted || !job.Status.Done() {
		t.Errorf("expected completed, got %q", job.Status)
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}

	snap := job.Snapshot()
	if snap.Title != "Guide" || snap.Entries != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	cached := NewJob("a.md", []byte("# A"))
	cached.Finish(o, true)
	if cached.Status != StatusCached {
		t.Errorf("expected cached, got %q", cached.Status)
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("a.pdf", []byte("junk"))
	job.Fail("parsing", errors.New("document unreadable"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "parsing" {
		t.Errorf("unexpected state %q/%q", snap.Status, snap.Phase)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "document unreadable" {
		t.Errorf("unexpected errors %v", snap.Errors)
	}
	if _, ok := job.Result(); ok {
		t.Error("failed job should have no result")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	snap := NewJob("a.md", nil).Snapshot()
	if snap.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("a.md", nil)
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Fatalf("expected to get job back, got %v", got)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("old.md", nil)
	expired.Finish(outline.Outline{}, false)
	store.Put(expired)

	running := NewJob("slow.pdf", nil)
	running.SetStatus(StatusParsing, "parsing")
	store.Put(running)

	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("new.md", nil)
	fresh.Finish(outline.Outline{}, false)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(running.ID) == nil {
		t.Error("expected in-flight job to survive cleanup")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}
