package graph

import (
	"strings"
	"sync"

	"github.com/adhithyan15/graphene/log"
)

// reservedNames are the graph operation names metadata keys may not take,
// normalized by normalizeName.
var reservedNames = func() map[string]struct{} {
	names := []string{
		"add_node", "add_data", "remove_data", "view_data", "view", "set",
		"remove", "get", "count", "attribute", "is_directed", "is_undirected",
		"snapshot", "restore", "keys", "node", "node_keys", "node_accessor",
		"name", "nodes", "metadata",
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalizeName(n)] = struct{}{}
	}
	return set
}()

// normalizeName folds case and drops underscores so that "view_data",
// "ViewData" and "viewdata" compare equal.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

// IsReservedName reports whether name is a graph operation name.
func IsReservedName(name string) bool {
	_, ok := reservedNames[normalizeName(strings.TrimSpace(name))]
	return ok
}

// MetadataStore holds graph-level key/value data, separate from nodes.
type MetadataStore struct {
	mu     sync.RWMutex
	data   map[string]any
	logger log.Logger
}

// NewMetadataStore creates an empty store. A nil logger uses the
// package-level logger.
func NewMetadataStore(logger log.Logger) *MetadataStore {
	return &MetadataStore{
		data:   make(map[string]any),
		logger: logger,
	}
}

func (m *MetadataStore) log() log.Logger {
	if m.logger == nil {
		return log.GetDefaultLogger()
	}
	return m.logger
}

// stringKey checks that key is a non-nil string and returns it trimmed.
func stringKey(op string, key any) (string, error) {
	if key == nil {
		return "", keyError(op, "", ErrNullKey)
	}
	s, ok := key.(string)
	if !ok {
		return "", keyError(op, "", ErrKeyNotString)
	}
	return strings.TrimSpace(s), nil
}

// Set stores value under key and returns it. The key is trimmed, must be a
// single token and may not be a reserved operation name. With noUpdate, an
// existing key is left untouched and ErrValueNonUpdatable is returned.
func (m *MetadataStore) Set(key any, value any, noUpdate bool) (any, error) {
	k, err := stringKey("add_data", key)
	if err != nil {
		return nil, err
	}
	switch {
	case k == "":
		return nil, keyError("add_data", k, ErrEmptyKey)
	case len(strings.Fields(k)) > 1:
		return nil, keyError("add_data", k, ErrKeyHasInternalSpaces)
	case IsReservedName(k):
		return nil, keyError("add_data", k, ErrKeyCollidesWithOperationName)
	case isNil(value):
		return nil, keyError("add_data", k, ErrNullValue)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[k]; exists && noUpdate {
		return nil, keyError("add_data", k, ErrValueNonUpdatable)
	}
	m.data[k] = value
	m.log().Debug("set metadata %q", k)
	return value, nil
}

// Remove deletes key and returns the value it held.
func (m *MetadataStore) Remove(key any) (any, error) {
	k, err := stringKey("remove_data", key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[k]
	if !ok {
		return nil, keyError("remove_data", k, ErrKeyNotFound)
	}
	delete(m.data, k)
	m.log().Debug("removed metadata %q", k)
	return value, nil
}

// View returns the value stored under key. An empty key returns a copy of
// the whole mapping as map[string]any.
func (m *MetadataStore) View(key string) (any, error) {
	k := strings.TrimSpace(key)
	if k == "" {
		return m.All(), nil
	}
	value, ok := m.Get(k)
	if !ok {
		return nil, keyError("view_data", k, ErrKeyNotFound)
	}
	return value, nil
}

// All returns a copy of every entry.
func (m *MetadataStore) All() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// Get returns the value stored under name, trimmed like every other key.
func (m *MetadataStore) Get(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[strings.TrimSpace(name)]
	return value, ok
}

// Attribute looks name up as a metadata attribute. Reserved operation
// names are never resolved against metadata.
func (m *MetadataStore) Attribute(name string) (any, error) {
	if !IsReservedName(name) {
		if value, ok := m.Get(name); ok {
			return value, nil
		}
	}
	return nil, keyError("attribute", name, ErrUnknownAttribute)
}

// Len returns the number of entries.
func (m *MetadataStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
