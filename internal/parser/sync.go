package parser

import (
	"context"
	"fmt"
	"path/filepath"
)

// SyncResult records the outcome of syncing one target.
type SyncResult struct {
	Target   Target
	Previous string
	Updated  bool
	Err      error
}

// Syncer propagates a version string into a set of sync targets.
type Syncer struct {
	reader *Reader
	writer *Writer
}

// NewSyncer creates a Syncer backed by the given Reader and Writer.
func NewSyncer(reader *Reader, writer *Writer) *Syncer {
	return &Syncer{reader: reader, writer: writer}
}

// Sync writes version into every target, resolving relative paths against
// projectRoot. It keeps going on per-target failures and reports them in
// the results; the returned error is non-nil when any target failed.
func (s *Syncer) Sync(ctx context.Context, projectRoot, version string, targets []Target) ([]SyncResult, error) {
	results := make([]SyncResult, 0, len(targets))
	failed := 0

	for _, target := range targets {
		resolved := target
		if !filepath.IsAbs(resolved.Path) {
			resolved.Path = filepath.Join(projectRoot, resolved.Path)
		}

		result := SyncResult{Target: target}

		previous, err := s.reader.Read(ctx, resolved)
		if err != nil {
			result.Err = err
			results = append(results, result)
			failed++
			continue
		}
		result.Previous = previous

		if previous != version {
			if err := s.writer.Write(ctx, resolved, version); err != nil {
				result.Err = err
				failed++
			} else {
				result.Updated = true
			}
		}
		results = append(results, result)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d sync targets failed", failed, len(targets))
	}
	return results, nil
}
