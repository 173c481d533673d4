package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by every SnapshotStore when a snapshot id is unknown.
var ErrNotFound = errors.New("snapshot not found")

// NodeRecord is the persisted form of one registered node.
type NodeRecord struct {
	Key        string          `json:"key"`
	Derivation string          `json:"derivation"`
	Accessor   string          `json:"accessor,omitempty"`
	Value      json.RawMessage `json:"value"`
}

// Snapshot is a point-in-time copy of a graph's nodes and metadata.
// Values are held in their encoded form; see ValueCodec.
type Snapshot struct {
	ID        string                     `json:"id"`
	GraphName string                     `json:"graph_name"`
	Directed  bool                       `json:"directed"`
	Metadata  map[string]json.RawMessage `json:"metadata"`
	Nodes     []NodeRecord               `json:"nodes"`
	Timestamp time.Time                  `json:"timestamp"`
	Version   int                        `json:"version"`
}

// SnapshotStore defines the interface for snapshot persistence
type SnapshotStore interface {
	// Save stores a snapshot, replacing any snapshot with the same id
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load retrieves a snapshot by id
	Load(ctx context.Context, snapshotID string) (*Snapshot, error)

	// List returns all snapshots of the named graph, oldest first
	List(ctx context.Context, graphName string) ([]*Snapshot, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, snapshotID string) error

	// Clear removes all snapshots of the named graph
	Clear(ctx context.Context, graphName string) error
}
