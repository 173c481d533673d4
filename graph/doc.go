// Package graph provides an in-memory graph container: a registry of node
// values stored under unique keys, plus a graph-level metadata store.
//
// # Node keys
//
// AddNode derives the key of a node from its custom key argument:
//
//	g := graph.NewUndirected()
//
//	g.AddNode(42, "")           // hashed: Hasher, or the comparable value itself
//	g.AddNode(city, "oslo")     // literal: "oslo"
//	g.AddNode(city, ".Code")    // delegated: the string returned by city.Code
//
// Delegated keys are resolved through FieldKeyer when the value implements
// it, and otherwise through an exported zero-argument method or exported
// struct field of that name. Accessors whose names appear in the forbidden
// set (process control, I/O, mutation and reflection names such as Exit,
// Close or Write) are refused with ErrSecurityViolation before they are
// called. A key that is already registered is refused with ErrDuplicateKey
// and the first value stays in place.
//
// # Metadata
//
// Metadata keys are trimmed strings without internal whitespace that do not
// collide with a graph operation name:
//
//	g.AddData("hello", 6, false)
//	v, _ := g.ViewData("hello")    // 6
//	all, _ := g.ViewData("")       // map[string]any{"hello": 6}
//	g.AddData("hello", 7, true)    // ErrValueNonUpdatable
//	g.AddData("view", 1, false)    // ErrKeyCollidesWithOperationName
//
// # Errors
//
// Every failure is a *KeyError wrapping one of the package's sentinel
// errors; use errors.Is to branch on the cause and KindOf to group causes.
//
// # Snapshots
//
// Snapshot and Restore convert a graph to and from a store.Snapshot, and
// Save and Load do the same through any store.SnapshotStore.
package graph
