package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhithyan15/graphene/store"
)

// Snapshot captures g's nodes and metadata using the default codec.
func Snapshot(g GraphVariant) (*store.Snapshot, error) {
	return SnapshotWithCodec(g, store.DefaultCodec())
}

// SnapshotWithCodec captures g's nodes and metadata, encoding values with codec.
// Each call gets a fresh id and the next version number for g.
func SnapshotWithCodec(g GraphVariant, codec *store.ValueCodec) (*store.Snapshot, error) {
	entries := g.Nodes().Entries()
	nodes := make([]store.NodeRecord, 0, len(entries))
	for _, e := range entries {
		raw, err := codec.Encode(e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode node %q: %w", e.Key, err)
		}
		nodes = append(nodes, store.NodeRecord{
			Key:        e.Key,
			Derivation: e.Derivation.String(),
			Accessor:   e.Accessor,
			Value:      raw,
		})
	}

	data := g.Metadata().All()
	metadata := make(map[string]json.RawMessage, len(data))
	for k, v := range data {
		raw, err := codec.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata %q: %w", k, err)
		}
		metadata[k] = raw
	}

	return &store.Snapshot{
		ID:        uuid.New().String(),
		GraphName: g.Name(),
		Directed:  g.IsDirected(),
		Metadata:  metadata,
		Nodes:     nodes,
		Timestamp: time.Now().UTC(),
		Version:   int(nextVersion(g)),
	}, nil
}

type hasBase interface {
	base() *Graph
}

func nextVersion(g GraphVariant) int64 {
	if b, ok := g.(hasBase); ok {
		return b.base().versions.Add(1)
	}
	return 1
}

// Restore builds a new graph of the snapshot's variant, named after the
// snapshot, using the default codec.
func Restore(snap *store.Snapshot, opts ...Option) (GraphVariant, error) {
	return RestoreWithCodec(snap, store.DefaultCodec(), opts...)
}

// RestoreWithCodec is Restore with an explicit codec.
func RestoreWithCodec(snap *store.Snapshot, codec *store.ValueCodec, opts ...Option) (GraphVariant, error) {
	opts = append([]Option{WithName(snap.GraphName)}, opts...)
	g := New(snap.Directed, opts...)
	if err := RestoreInto(g, snap, codec); err != nil {
		return nil, err
	}
	return g, nil
}

// RestoreInto loads snap into g. g must be empty and of the same variant
// as the snapshot; otherwise ErrUnsupportedOperation is returned. Nodes keep
// their recorded key and derivation. Either the whole snapshot is loaded or
// g is left untouched.
func RestoreInto(g GraphVariant, snap *store.Snapshot, codec *store.ValueCodec) error {
	if g.IsDirected() != snap.Directed {
		return keyError("restore", snap.ID, fmt.Errorf("%w: variant mismatch", ErrUnsupportedOperation))
	}
	if g.Count() != 0 || g.Metadata().Len() != 0 {
		return keyError("restore", snap.ID, errNotEmpty)
	}

	nodes := NewNodeRegistry(g.Nodes().logger)
	for _, rec := range snap.Nodes {
		derivation, ok := ParseDerivation(rec.Derivation)
		if !ok {
			return fmt.Errorf("node %q: unknown derivation %q", rec.Key, rec.Derivation)
		}
		value, err := codec.Decode(rec.Value)
		if err != nil {
			return fmt.Errorf("failed to decode node %q: %w", rec.Key, err)
		}
		if err := nodes.restore(NodeEntry{
			Key:        rec.Key,
			Value:      value,
			Derivation: derivation,
			Accessor:   rec.Accessor,
		}); err != nil {
			return err
		}
	}

	data := NewMetadataStore(g.Metadata().logger)
	for k, raw := range snap.Metadata {
		value, err := codec.Decode(raw)
		if err != nil {
			return fmt.Errorf("failed to decode metadata %q: %w", k, err)
		}
		if _, err := data.Set(k, value, false); err != nil {
			return err
		}
	}

	if err := swapIn(g, nodes, data); err != nil {
		return keyError("restore", snap.ID, err)
	}
	if b, ok := g.(hasBase); ok {
		b.base().versions.Store(int64(snap.Version))
	}
	return nil
}

var errNotEmpty = fmt.Errorf("%w: target graph is not empty", ErrUnsupportedOperation)

// swapIn moves the staged nodes and data into g if g is still empty.
func swapIn(g GraphVariant, nodes *NodeRegistry, data *MetadataStore) error {
	r, m := g.Nodes(), g.Metadata()
	r.mu.Lock()
	defer r.mu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(r.entries) != 0 || len(m.data) != 0 {
		return errNotEmpty
	}
	r.entries, r.accessors = nodes.entries, nodes.accessors
	m.data = data.data
	return nil
}

// Save snapshots g and writes it to s, returning the snapshot id.
func Save(ctx context.Context, s store.SnapshotStore, g GraphVariant) (string, error) {
	snap, err := Snapshot(g)
	if err != nil {
		return "", err
	}
	if err := s.Save(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// Load reads a snapshot from s and restores it.
func Load(ctx context.Context, s store.SnapshotStore, snapshotID string, opts ...Option) (GraphVariant, error) {
	snap, err := s.Load(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	return Restore(snap, opts...)
}
