// Package redis provides a SnapshotStore backed by Redis via
// github.com/redis/go-redis/v9.
//
// Each snapshot is stored as JSON under "<prefix>snapshot:<id>"; a set at
// "<prefix>graph:<name>:snapshots" indexes the ids of one graph. An
// optional TTL expires both.
//
//	s := redis.NewRedisSnapshotStore(redis.RedisOptions{
//		Addr:   "localhost:6379",
//		Prefix: "myapp:",
//		TTL:    24 * time.Hour,
//	})
//	defer s.Close()
package redis
