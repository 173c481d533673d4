// Package log provides the leveled logging interface used by graphene.
//
// The graph package logs node registrations and metadata mutations at
// debug level and rejected delegated accessors at warn level. By default
// it writes through the package-level logger, which emits warnings and
// above to stderr.
//
//	logger := log.NewDefaultLogger(log.LogLevelDebug)
//	g := graph.NewUndirected(graph.WithLogger(logger))
//
// Two further implementations are provided: NoOpLogger, which discards
// everything, and GologLogger, which forwards to a kataras/golog logger:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[graphs] ")
//	log.SetDefaultLogger(log.NewGologLogger(glogger))
//
// ParseLevel maps configuration strings ("debug", "info", "warn",
// "error", "none") to a LogLevel.
package log
