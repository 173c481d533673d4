package graph

import (
	"sort"
	"sync"

	"github.com/adhithyan15/graphene/log"
)

// NodeEntry is one registered node. Entries are immutable once stored.
type NodeEntry struct {
	Key        string
	Value      any
	Derivation Derivation
	// Accessor is the accessor name for Delegated entries and empty otherwise.
	Accessor string
}

// NodeRegistry maps derived keys to node values.
type NodeRegistry struct {
	mu        sync.RWMutex
	entries   map[string]NodeEntry
	accessors map[string]string
	logger    log.Logger
}

// NewNodeRegistry creates an empty registry. A nil logger uses the
// package-level logger from the log package.
func NewNodeRegistry(logger log.Logger) *NodeRegistry {
	return &NodeRegistry{
		entries:   make(map[string]NodeEntry),
		accessors: make(map[string]string),
		logger:    logger,
	}
}

func (r *NodeRegistry) log() log.Logger {
	if r.logger == nil {
		return log.GetDefaultLogger()
	}
	return r.logger
}

// Register stores value under a key derived from customKey:
//
//   - "" hashes the value (Hasher, or the value itself when comparable)
//   - ".Name" calls the accessor Name on the value and uses its string result
//   - anything else is used verbatim
//
// Register either inserts the entry or returns an error and leaves the
// registry unchanged.
func (r *NodeRegistry) Register(value any, customKey string) error {
	if isNil(value) {
		return keyError("add_node", customKey, ErrNullValue)
	}

	res, err := resolveKey(value, customKey)
	if err != nil {
		if err == ErrSecurityViolation {
			r.log().Warn("rejected forbidden accessor %q", customKey)
		}
		return keyError("add_node", customKey, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(NodeEntry{
		Key:        res.key,
		Value:      value,
		Derivation: res.derivation,
		Accessor:   res.accessor,
	})
}

func (r *NodeRegistry) insertLocked(entry NodeEntry) error {
	if _, exists := r.entries[entry.Key]; exists {
		return keyError("add_node", entry.Key, ErrDuplicateKey)
	}
	r.entries[entry.Key] = entry
	if entry.Derivation == Delegated {
		r.accessors[entry.Key] = entry.Accessor
	}
	r.log().Debug("registered node %q (%s)", entry.Key, entry.Derivation)
	return nil
}

// restore inserts an entry whose key was derived elsewhere.
func (r *NodeRegistry) restore(entry NodeEntry) error {
	if isNil(entry.Value) {
		return keyError("restore", entry.Key, ErrNullValue)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(entry)
}

// Count returns the number of registered nodes.
func (r *NodeRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Get returns the value stored under key.
func (r *NodeRegistry) Get(key string) (any, bool) {
	entry, ok := r.Entry(key)
	return entry.Value, ok
}

// Entry returns the full entry stored under key.
func (r *NodeRegistry) Entry(key string) (NodeEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[key]
	return entry, ok
}

// Accessor returns the accessor name a delegated key was resolved through.
func (r *NodeRegistry) Accessor(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.accessors[key]
	return name, ok
}

// Keys returns all keys in sorted order.
func (r *NodeRegistry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Entries returns all entries ordered by key.
func (r *NodeRegistry) Entries() []NodeEntry {
	keys := r.Keys()
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]NodeEntry, 0, len(keys))
	for _, k := range keys {
		if e, ok := r.entries[k]; ok {
			entries = append(entries, e)
		}
	}
	return entries
}
