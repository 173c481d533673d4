package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// ValueCodec encodes opaque node and metadata values to JSON and back.
// Types registered with the codec are wrapped with their name so they
// decode to the original Go type; everything else round-trips through
// plain encoding/json (numbers come back as float64, objects as maps).
type ValueCodec struct {
	mu         sync.RWMutex
	nameToType map[string]reflect.Type
	typeToName map[reflect.Type]string
}

type typedValue struct {
	Type  string          `json:"_type"`
	Value json.RawMessage `json:"_value"`
}

// NewValueCodec returns an empty codec.
func NewValueCodec() *ValueCodec {
	return &ValueCodec{
		nameToType: make(map[string]reflect.Type),
		typeToName: make(map[reflect.Type]string),
	}
}

var defaultCodec = NewValueCodec()

// DefaultCodec returns the process-wide codec used by graph snapshots.
func DefaultCodec() *ValueCodec {
	return defaultCodec
}

// RegisterType registers the dynamic type of value under name in the default codec.
//
//	store.RegisterType(City{}, "City")
func RegisterType(value any, name string) error {
	return defaultCodec.Register(value, name)
}

// Register records the dynamic type of value under name. Registering the
// same type under the same name twice is a no-op.
func (c *ValueCodec) Register(value any, name string) error {
	if value == nil {
		return fmt.Errorf("cannot register the type of a nil value")
	}
	if name == "" {
		return fmt.Errorf("type name must not be empty")
	}
	t := reflect.TypeOf(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.typeToName[t]; ok && existing != name {
		return fmt.Errorf("type %v already registered as %s", t, existing)
	}
	if existing, ok := c.nameToType[name]; ok && existing != t {
		return fmt.Errorf("name %s already registered for type %v", name, existing)
	}
	c.nameToType[name] = t
	c.typeToName[t] = name
	return nil
}

// TypeName returns the registered name for the dynamic type of value.
func (c *ValueCodec) TypeName(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.typeToName[reflect.TypeOf(value)]
	return name, ok
}

// Encode marshals value, wrapping it with its type name when registered.
func (c *ValueCodec) Encode(value any) (json.RawMessage, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	name, ok := c.TypeName(value)
	if !ok {
		return data, nil
	}
	wrapped, err := json.Marshal(typedValue{Type: name, Value: data})
	if err != nil {
		return nil, fmt.Errorf("failed to wrap value of type %s: %w", name, err)
	}
	return wrapped, nil
}

// Decode reverses Encode.
func (c *ValueCodec) Decode(data json.RawMessage) (any, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err == nil {
		if rawName, ok := probe["_type"]; ok {
			return c.decodeTyped(rawName, probe["_value"])
		}
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return result, nil
}

func (c *ValueCodec) decodeTyped(rawName, rawValue json.RawMessage) (any, error) {
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		return nil, fmt.Errorf("failed to unmarshal type name: %w", err)
	}
	if rawValue == nil {
		return nil, fmt.Errorf("missing _value for type %s", name)
	}

	c.mu.RLock()
	t, ok := c.nameToType[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown type: %s", name)
	}

	ptr := reflect.New(t)
	if err := json.Unmarshal(rawValue, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return ptr.Elem().Interface(), nil
}
