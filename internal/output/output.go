// Package output persists finished outlines.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
)

// Sink stores one outline document under a name such as "report.json".
type Sink interface {
	Write(ctx context.Context, name string, o outline.Outline) error
}

// New returns the sink selected by cfg.Type.
func New(ctx context.Context, cfg config.OutputConfig) (Sink, error) {
	switch cfg.Type {
	case "", "local":
		return NewDirSink(cfg.Dir), nil
	case "minio":
		return NewMinIOSink(ctx, minIOConfig(cfg))
	}
	return nil, fmt.Errorf("unknown output type %q", cfg.Type)
}

func minIOConfig(cfg config.OutputConfig) MinIOConfig {
	return MinIOConfig{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		Prefix:    cfg.Prefix,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
	}
}

// Name derives the output file name for a source document:
// "a/b/report.pdf" becomes "report.json".
func Name(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// Encode renders an outline as 2-space indented JSON. Non-ASCII text and
// HTML metacharacters are written verbatim.
func Encode(o outline.Outline) ([]byte, error) {
	if o.Entries == nil {
		o.Entries = []outline.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encode outline: %w", err)
	}
	return buf.Bytes(), nil
}
