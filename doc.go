// Graphene - an in-memory graph container for Go
//
// Graphene stores arbitrary values as graph nodes under unique string keys and
// keeps a small, validated dictionary of graph-level metadata next to them.
// Graphs come in two flavours, directed and undirected, which share the same
// node and metadata machinery and differ only in how they report themselves.
//
// # Packages
//
//   - graph: node registry, metadata store, graph variants and snapshots
//   - log: leveled logging with a default logger and a golog adapter
//   - store: snapshot model, value codec and the SnapshotStore interface
//   - store/memory, store/file, store/sqlite, store/postgres, store/redis:
//     SnapshotStore backends
//   - config: viper backed configuration that builds loggers and stores
//
// # Node keys
//
// Every node is registered with a key derived in one of three ways:
//
//   - Hashed: no custom key is given and the value's hash is used
//   - Literal: the custom key is used as is
//   - Delegated: a custom key starting with "." names a field or method of
//     the value whose result becomes the key
//
// Delegated accessors that could reach process control, I/O or reflection are
// refused with graph.ErrSecurityViolation.
//
// # Quick start
//
//	g := graph.NewDirected(graph.WithName("metro"))
//
//	if err := g.AddNode(station{Code: "KGX"}, ".Code"); err != nil {
//		return err
//	}
//	if _, err := g.AddData("operator", "TfL", true); err != nil {
//		return err
//	}
//
//	op, _ := g.Attribute("operator")
//	fmt.Println(g.Count(), op) // 1 TfL
//
// # Persistence
//
// A graph can be captured as a store.Snapshot and written to any backend:
//
//	cfg, err := config.Load("graphene.yaml")
//	if err != nil {
//		return err
//	}
//	s, err := cfg.OpenStore(ctx)
//	if err != nil {
//		return err
//	}
//	id, err := graph.Save(ctx, s, g)
//	if err != nil {
//		return err
//	}
//	restored, err := graph.Load(ctx, s, id)
//
// Node values round trip through JSON. Register concrete types with
// store.RegisterType so they come back as their original type.
package graphene // import "github.com/adhithyan15/graphene"
