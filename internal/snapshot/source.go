package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cintel/internal/metricindex"
	"cintel/internal/trie"
)

// Snapshot is a full point-in-time copy of the tracked companies and their metrics.
type Snapshot struct {
	Companies []metricindex.Company      `json:"companies" validate:"dive"`
	Metrics   []metricindex.MetricRecord `json:"metrics" validate:"dive"`
}

// SearchEntries projects the company directory into autocomplete payloads.
func (s Snapshot) SearchEntries() []trie.SearchResult {
	out := make([]trie.SearchResult, 0, len(s.Companies))
	for _, c := range s.Companies {
		out = append(out, trie.SearchResult{ID: c.ID, Name: c.Name, Type: c.Type, LogoURL: c.LogoURL})
	}
	return out
}

// Source supplies complete snapshots from the system of record.
type Source interface {
	Name() string
	Load(ctx context.Context) (Snapshot, error)
}

// FileSource serves snapshots from a JSON document.
type FileSource struct {
	name string
	path string
}

// NewFileSource returns a FileSource referencing the given file.
func NewFileSource(name, path string) (*FileSource, error) {
	if name == "" {
		return nil, errors.New("file source requires a name")
	}
	if path == "" {
		return nil, errors.New("file source requires a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	return &FileSource{name: name, path: path}, nil
}

// Name returns the source name.
func (s *FileSource) Name() string { return s.name }

// Load reads, decodes and validates the snapshot file.
func (s *FileSource) Load(ctx context.Context) (Snapshot, error) {
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	snap, err := decodeSnapshot(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	if err := Validate(snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", s.path, err)
	}
	return snap, nil
}

// StaticSource serves a fixed in-memory snapshot.
type StaticSource struct {
	name string
	snap Snapshot
}

// NewStaticSource validates snap and wraps it as a Source.
func NewStaticSource(name string, snap Snapshot) (*StaticSource, error) {
	if err := Validate(snap); err != nil {
		return nil, err
	}
	return &StaticSource{name: name, snap: snap}, nil
}

// Name returns the source name.
func (s *StaticSource) Name() string { return s.name }

// Load returns the wrapped snapshot.
func (s *StaticSource) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	return s.snap, nil
}
