// Package sqlite provides a SnapshotStore backed by SQLite through
// github.com/mattn/go-sqlite3 (cgo).
//
//	s, err := sqlite.NewSqliteSnapshotStore(sqlite.SqliteOptions{
//		Path: "./graphs.db",
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
// Metadata and node records are stored as JSON text columns in a single
// table (default "graph_snapshots") indexed by graph name.
package sqlite
