// Package file provides a SnapshotStore that writes one JSON file per snapshot.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adhithyan15/graphene/store"
)

// FileSnapshotStore stores snapshots as <id>.json inside a directory.
type FileSnapshotStore struct {
	mu   sync.RWMutex
	path string
}

var _ store.SnapshotStore = (*FileSnapshotStore)(nil)

// NewFileSnapshotStore creates the directory if needed.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSnapshotStore{path: path}, nil
}

func (s *FileSnapshotStore) filename(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid snapshot id %q", id)
	}
	return filepath.Join(s.path, id+".json"), nil
}

// Save writes the snapshot, replacing any existing file
func (s *FileSnapshotStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot must not be nil")
	}
	name, err := s.filename(snapshot.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, name); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot by id
func (s *FileSnapshotStore) Load(_ context.Context, snapshotID string) (*store.Snapshot, error) {
	name, err := s.filename(snapshotID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return readSnapshot(name, snapshotID)
}

func readSnapshot(name, id string) (*store.Snapshot, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// List scans the directory for snapshots of the named graph
func (s *FileSnapshotStore) List(_ context.Context, graphName string) ([]*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(graphName)
}

func (s *FileSnapshotStore) list(graphName string) ([]*store.Snapshot, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	result := make([]*store.Snapshot, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		snap, err := readSnapshot(filepath.Join(s.path, entry.Name()), id)
		if err != nil {
			return nil, err
		}
		if snap.GraphName == graphName {
			result = append(result, snap)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

// Delete removes a snapshot file; deleting an unknown id is not an error
func (s *FileSnapshotStore) Delete(_ context.Context, snapshotID string) error {
	name, err := s.filename(snapshotID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes every snapshot file of the named graph
func (s *FileSnapshotStore) Clear(_ context.Context, graphName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps, err := s.list(graphName)
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		if err := os.Remove(filepath.Join(s.path, snap.ID+".json")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete snapshot %s: %w", snap.ID, err)
		}
	}
	return nil
}
