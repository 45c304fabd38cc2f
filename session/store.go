package session

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrStoreUnavailable is returned when the backing storage cannot be
// reached at all (redis down, unreadable directory). A corrupt record is
// not an error; stores purge it and report the session as absent.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store persists the session record under one key.
//
// Load returns (nil, nil) when no session exists, including after a
// corrupt record was purged. Save must leave the record fully consistent
// before returning: an in-flight request observing the store mid-write
// would otherwise inject a half-written identity.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Clear(ctx context.Context) error
}

func encode(rec *Record) ([]byte, error) {
	return json.Marshal(rec)
}

func decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
