package graph

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DelegationMarker prefixes a custom key that names an accessor on the
// node value instead of being the key itself.
const DelegationMarker = "."

// Derivation records how a node's key was obtained.
type Derivation int

const (
	// Hashed keys come from Hasher or a hash of the value itself.
	Hashed Derivation = iota
	// Literal keys are the custom key, verbatim.
	Literal
	// Delegated keys are the string result of a named accessor.
	Delegated
)

func (d Derivation) String() string {
	switch d {
	case Hashed:
		return "hashed"
	case Literal:
		return "literal"
	case Delegated:
		return "delegated"
	default:
		return "unknown"
	}
}

// ParseDerivation is the inverse of Derivation.String.
func ParseDerivation(s string) (Derivation, bool) {
	switch s {
	case "hashed":
		return Hashed, true
	case "literal":
		return Literal, true
	case "delegated":
		return Delegated, true
	default:
		return 0, false
	}
}

// Hasher is implemented by node values that provide their own hash.
type Hasher interface {
	Hash() uint64
}

// FieldKeyer is implemented by node values that expose named key fields
// explicitly. It takes precedence over reflection for delegated keys.
type FieldKeyer interface {
	HasKeyField(name string) bool
	KeyField(name string) any
}

// forbiddenAccessors holds the accessor names delegation refuses to call,
// lower-cased. It is built once and never written afterwards.
var forbiddenAccessors = func() map[string]struct{} {
	names := []string{
		// process control
		"exit", "abort", "kill", "signal", "panic", "fatal", "fatalf", "exec",
		"fork", "spawn", "system", "syscall", "run", "start", "wait", "stop",
		"shutdown", "cancel",
		// I/O
		"open", "create", "read", "readat", "readfrom", "readall", "write",
		"writeat", "writeto", "writestring", "close", "flush", "sync", "seek",
		"truncate", "remove", "removeall", "rename", "chmod", "chown", "mkdir",
		"dial", "listen", "accept", "serve", "send", "recv", "print", "printf",
		"println",
		// control flow and mutation
		"do", "call", "invoke", "eval", "go", "defer", "goto", "lock", "unlock",
		"rlock", "runlock", "store", "swap", "compareandswap", "delete", "set",
		"reset", "load",
		// reflection
		"interface", "elem", "addr", "unsafeaddr", "unsafepointer", "pointer",
		"method", "methodbyname", "fieldbyname", "fieldbynamefunc", "setfield",
		"setmapindex", "setpointer", "valueof", "typeof",
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}()

// IsForbiddenAccessor reports whether name may not be used for delegation.
// The comparison ignores case.
func IsForbiddenAccessor(name string) bool {
	_, ok := forbiddenAccessors[strings.ToLower(name)]
	return ok
}

var hashSeed = maphash.MakeSeed()

// isNil reports whether value is nil or a typed nil of a nil-able kind.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// hashKey derives a Hashed key. Plain values hash the same in every process;
// values holding pointers or channels hash by identity and only within one.
func hashKey(value any) (string, error) {
	if h, ok := value.(Hasher); ok {
		return strconv.FormatUint(h.Hash(), 10), nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Comparable() {
		return "", ErrNoHashCapability
	}
	d := xxhash.New()
	if writeCanonical(d, rv) {
		return strconv.FormatUint(d.Sum64(), 10), nil
	}
	return strconv.FormatUint(maphash.Comparable(hashSeed, value), 10), nil
}

// writeCanonical writes a type-tagged encoding of rv to d. It returns false
// when rv holds something without a stable encoding (pointers, channels, NaN).
func writeCanonical(d *xxhash.Digest, rv reflect.Value) bool {
	t := rv.Type()
	if t.Name() != "" {
		d.WriteString(t.PkgPath())
		d.WriteString(".")
	}
	d.WriteString(t.String())
	d.Write([]byte{0})

	var buf [8]byte
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			buf[0] = 1
		}
		d.Write(buf[:1])
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(rv.Int()))
		d.Write(buf[:])
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		binary.LittleEndian.PutUint64(buf[:], rv.Uint())
		d.Write(buf[:])
	case reflect.Float32, reflect.Float64:
		return writeFloat(d, rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return writeFloat(d, real(c)) && writeFloat(d, imag(c))
	case reflect.String:
		binary.LittleEndian.PutUint64(buf[:], uint64(rv.Len()))
		d.Write(buf[:])
		d.WriteString(rv.String())
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !writeCanonical(d, rv.Index(i)) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !writeCanonical(d, rv.Field(i)) {
				return false
			}
		}
	case reflect.Interface:
		if rv.IsNil() {
			d.Write([]byte{0})
			return true
		}
		return writeCanonical(d, rv.Elem())
	default:
		return false
	}
	return true
}

func writeFloat(d *xxhash.Digest, f float64) bool {
	if math.IsNaN(f) {
		return false
	}
	if f == 0 {
		f = 0 // -0 == +0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	d.Write(buf[:])
	return true
}

// accessor is a resolved, not yet invoked, delegated accessor.
type accessor func() any

// lookupAccessor finds name on value without calling it.
func lookupAccessor(value any, name string) (accessor, bool) {
	if name == "" {
		return nil, false
	}
	if fk, ok := value.(FieldKeyer); ok {
		if !fk.HasKeyField(name) {
			return nil, false
		}
		return func() any { return fk.KeyField(name) }, true
	}

	rv := reflect.ValueOf(value)
	if isNil(value) {
		return nil, false
	}
	if m := rv.MethodByName(name); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() != 0 || mt.NumOut() != 1 {
			return nil, false
		}
		return func() any { return m.Call(nil)[0].Interface() }, true
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	sf, ok := rv.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return nil, false
	}
	field, err := rv.FieldByIndexErr(sf.Index)
	if err != nil || !field.CanInterface() {
		return nil, false
	}
	return func() any { return field.Interface() }, true
}

// resolution is the outcome of key derivation for one value.
type resolution struct {
	key        string
	derivation Derivation
	accessor   string
}

// resolveKey implements the derivation protocol. For delegated keys the
// order is: accessor lookup, forbidden check, invocation, type check.
func resolveKey(value any, customKey string) (resolution, error) {
	if customKey == "" {
		key, err := hashKey(value)
		if err != nil {
			return resolution{}, err
		}
		return resolution{key: key, derivation: Hashed}, nil
	}

	if !strings.HasPrefix(customKey, DelegationMarker) {
		return resolution{key: customKey, derivation: Literal}, nil
	}

	name := strings.TrimPrefix(customKey, DelegationMarker)
	get, ok := lookupAccessor(value, name)
	if !ok {
		return resolution{}, ErrAccessorNotFound
	}
	if IsForbiddenAccessor(name) {
		return resolution{}, ErrSecurityViolation
	}
	key, ok := get().(string)
	if !ok {
		return resolution{}, ErrKeyType
	}
	return resolution{key: key, derivation: Delegated, accessor: name}, nil
}
