// Package batch runs outline extraction over every document in a directory.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/output"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/stats"
)

// Driver processes the input directory one document at a time.
type Driver struct {
	InputDir string
	Sink     output.Sink
	Policy   outline.Policy
	Log      *slog.Logger
	Stats    *stats.Recorder // optional
}

// Summary counts the documents a run handled.
type Summary struct {
	Found     int `json:"found"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Run extracts and stores an outline for each supported file in lexical
// order. A failing document is logged and counted; the run continues.
// Cancellation is honoured between documents.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	files, err := ListInputs(d.InputDir)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Found: len(files)}
	d.Log.Info("batch started", "input_dir", d.InputDir, "documents", len(files))

	names := OutputNames(files)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := d.processFile(ctx, path, names[path]); err != nil {
			sum.Failed++
			d.Log.Error("document failed", "file", filepath.Base(path), "error", err)
			continue
		}
		sum.Succeeded++
	}

	d.Log.Info("batch finished", "succeeded", sum.Succeeded, "failed", sum.Failed)
	return sum, nil
}

func (d *Driver) processFile(ctx context.Context, path, outName string) error {
	name := filepath.Base(path)
	log := d.Log.With("file", name)
	log.Info("processing")

	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	o, lines, err := d.extract(path)
	elapsed := time.Since(start)
	if d.Stats != nil {
		d.Stats.Observe(elapsed, err)
	}
	if err != nil {
		return err
	}

	if err := d.Sink.Write(ctx, outName, o); err != nil {
		return fmt.Errorf("save %s: %w", outName, err)
	}

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	log.Info("saved",
		"output", outName,
		"title", o.Title,
		"lines", lines,
		"entries", len(o.Entries),
		"elapsed_ms", elapsed.Milliseconds(),
		"heap_delta_mb", heapDeltaMB(before, after),
	)
	for _, e := range o.Entries {
		log.Debug("entry", "level", e.Level, "text", e.Text, "page", e.Page)
	}
	return nil
}

// extract returns the outline and the number of text lines parsed.
func (d *Driver) extract(path string) (outline.Outline, int, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return outline.Outline{}, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return outline.Outline{}, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return outline.Outline{}, 0, fmt.Errorf("parse: %w", err)
	}
	return d.Policy.Build(doc), doc.LineCount(), nil
}

// OutputNames maps each input path to its output name. Inputs whose
// derived names clash, such as report.md and report.pdf, keep their full
// file name instead (report.md.json, report.pdf.json) so no output
// replaces another.
func OutputNames(files []string) map[string]string {
	names := make(map[string]string, len(files))
	for _, path := range files {
		names[path] = output.Name(path)
	}

	// Full file names are unique within a directory, so promoting a
	// clashing name at most once per file always converges.
	promoted := make(map[string]bool, len(files))
	for changed := true; changed; {
		changed = false
		count := make(map[string]int, len(names))
		for _, name := range names {
			count[name]++
		}
		for _, path := range files {
			if count[names[path]] > 1 && !promoted[path] {
				names[path] = filepath.Base(path) + ".json"
				promoted[path] = true
				changed = true
			}
		}
	}
	return names
}

// ListInputs returns the supported regular files directly inside dir,
// sorted by name.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func heapDeltaMB(before, after runtime.MemStats) float64 {
	return (float64(after.HeapAlloc) - float64(before.HeapAlloc)) / (1 << 20)
}
