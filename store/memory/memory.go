// Package memory provides an in-process SnapshotStore.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/adhithyan15/graphene/store"
)

// MemorySnapshotStore keeps snapshots in a map guarded by a RWMutex.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*store.Snapshot
}

var _ store.SnapshotStore = (*MemorySnapshotStore)(nil)

// NewMemorySnapshotStore creates an empty store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]*store.Snapshot),
	}
}

// clone copies snap including its metadata map, node slice and raw values.
func clone(snap *store.Snapshot) *store.Snapshot {
	cp := *snap
	if snap.Metadata != nil {
		cp.Metadata = make(map[string]json.RawMessage, len(snap.Metadata))
		for k, v := range snap.Metadata {
			cp.Metadata[k] = bytes.Clone(v)
		}
	}
	if snap.Nodes != nil {
		cp.Nodes = make([]store.NodeRecord, len(snap.Nodes))
		for i, n := range snap.Nodes {
			n.Value = bytes.Clone(n.Value)
			cp.Nodes[i] = n
		}
	}
	return &cp
}

// Save stores a copy of the snapshot
func (m *MemorySnapshotStore) Save(_ context.Context, snapshot *store.Snapshot) error {
	if snapshot == nil || snapshot.ID == "" {
		return fmt.Errorf("snapshot id must not be empty")
	}
	cp := clone(snapshot)
	m.mu.Lock()
	m.snapshots[snapshot.ID] = cp
	m.mu.Unlock()
	return nil
}

// Load retrieves a snapshot by id
func (m *MemorySnapshotStore) Load(_ context.Context, snapshotID string) (*store.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[snapshotID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, snapshotID)
	}
	return clone(snap), nil
}

// List returns the named graph's snapshots ordered by timestamp
func (m *MemorySnapshotStore) List(_ context.Context, graphName string) ([]*store.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*store.Snapshot, 0)
	for _, snap := range m.snapshots {
		if snap.GraphName == graphName {
			result = append(result, clone(snap))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

// Delete removes a snapshot; deleting an unknown id is not an error
func (m *MemorySnapshotStore) Delete(_ context.Context, snapshotID string) error {
	m.mu.Lock()
	delete(m.snapshots, snapshotID)
	m.mu.Unlock()
	return nil
}

// Clear removes all snapshots of the named graph
func (m *MemorySnapshotStore) Clear(_ context.Context, graphName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, snap := range m.snapshots {
		if snap.GraphName == graphName {
			delete(m.snapshots, id)
		}
	}
	return nil
}
