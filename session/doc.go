// Package session implements the persisted client session: one durable
// record holding the authentication token and the user profile, stored
// under a single key.
//
// Stores are self-healing: a record that can no longer be decoded is
// treated as absent and purged, never surfaced as an error. No caller may
// assume Load always yields a record.
//
// Three implementations are provided. FileStore is the durable default for
// desktop and CLI consumers, MemoryStore backs tests and throwaway
// processes, and RedisStore serves server-side consumers that need the
// session shared across replicas.
package session
