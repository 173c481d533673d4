package graph

import (
	"errors"
	"fmt"
)

// Node registration errors.
var (
	// ErrNullValue is returned when a nil node or metadata value is supplied.
	ErrNullValue = errors.New("value is nil")

	// ErrNoHashCapability is returned when a node registered without a custom
	// key neither implements Hasher nor is comparable.
	ErrNoHashCapability = errors.New("value has no hash capability")

	// ErrAccessorNotFound is returned when a delegated key names an accessor
	// the value does not expose.
	ErrAccessorNotFound = errors.New("accessor not found")

	// ErrSecurityViolation is returned when a delegated key names a
	// forbidden accessor. The accessor is never invoked.
	ErrSecurityViolation = errors.New("forbidden accessor")

	// ErrKeyType is returned when a delegated accessor yields a non-string.
	ErrKeyType = errors.New("accessor result is not a string")

	// ErrDuplicateKey is returned when the resolved key is already registered.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Metadata errors.
var (
	ErrNullKey                      = errors.New("key is nil")
	ErrKeyNotString                 = errors.New("key is not a string")
	ErrEmptyKey                     = errors.New("key is empty")
	ErrKeyHasInternalSpaces         = errors.New("key contains internal whitespace")
	ErrKeyCollidesWithOperationName = errors.New("key collides with a graph operation name")
	ErrValueNonUpdatable            = errors.New("value exists and may not be updated")
	ErrKeyNotFound                  = errors.New("key not found")
	ErrUnknownAttribute             = errors.New("unknown attribute")
)

// ErrUnsupportedOperation is returned for operations a graph variant
// cannot perform, such as restoring a directed snapshot into an
// undirected graph.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// KeyError records the operation and key of a failed call.
// Use errors.Is against the sentinel errors above to branch on the cause.
type KeyError struct {
	Op  string
	Key string
	Err error
}

func (e *KeyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("graph: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("graph: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

func keyError(op, key string, err error) error {
	return &KeyError{Op: op, Key: key, Err: err}
}

// ErrorKind groups errors by how a caller is expected to react.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation: nil, wrong type or malformed argument
	KindValidation
	// KindIdentity: the value cannot produce a key
	KindIdentity
	// KindIntegrity: the key is already taken; state is unchanged
	KindIntegrity
	// KindSecurity: a forbidden accessor was named
	KindSecurity
	// KindPolicy: an update was refused by a no-update request
	KindPolicy
	// KindNotFound: the key or attribute is absent
	KindNotFound
	// KindUnsupported: the variant does not support the operation
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIdentity:
		return "identity"
	case KindIntegrity:
		return "integrity"
	case KindSecurity:
		return "security"
	case KindPolicy:
		return "policy"
	case KindNotFound:
		return "not_found"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrNullValue, KindValidation},
	{ErrNullKey, KindValidation},
	{ErrKeyNotString, KindValidation},
	{ErrEmptyKey, KindValidation},
	{ErrKeyHasInternalSpaces, KindValidation},
	{ErrKeyCollidesWithOperationName, KindValidation},
	{ErrNoHashCapability, KindIdentity},
	{ErrAccessorNotFound, KindIdentity},
	{ErrKeyType, KindIdentity},
	{ErrDuplicateKey, KindIntegrity},
	{ErrSecurityViolation, KindSecurity},
	{ErrValueNonUpdatable, KindPolicy},
	{ErrKeyNotFound, KindNotFound},
	{ErrUnknownAttribute, KindNotFound},
	{ErrUnsupportedOperation, KindUnsupported},
}

// KindOf classifies err. Errors not produced by this package are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return KindUnknown
}
