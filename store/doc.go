// Package store defines how graph snapshots are persisted.
//
// A Snapshot holds a graph's node records and metadata in encoded form.
// SnapshotStore is implemented by the backends in the sub-packages:
//
//   - store/memory: in-process map, for tests and short-lived tools
//   - store/file: one JSON file per snapshot in a directory
//   - store/sqlite: a single table in a SQLite database (mattn/go-sqlite3)
//   - store/postgres: a JSONB table reached through a pgx pool
//   - store/redis: one key per snapshot plus a per-graph index set
//
// Every backend returns an error wrapping ErrNotFound when Load is asked
// for an unknown id.
//
// Node and metadata values are arbitrary Go values. ValueCodec turns them
// into JSON; register a type to have it decoded back to itself rather
// than to the generic map/float64 shapes of encoding/json:
//
//	type City struct {
//		Name string `json:"name"`
//	}
//
//	store.RegisterType(City{}, "City")
package store
