package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "")
	ctx := context.Background()

	if rec, err := store.Load(ctx); err != nil || rec != nil {
		t.Fatalf("expected empty store, got rec=%v err=%v", rec, err)
	}

	if err := store.Save(ctx, testRecord()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !rec.IsLoggedIn() || rec.Token != "tok-abc" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if rec, _ := store.Load(ctx); rec != nil {
		t.Fatal("expected cleared store")
	}
}

func TestRedisStorePurgesCorruptRecord(t *testing.T) {
	mr, rdb := newTestRedis(t)
	if err := mr.Set(DefaultRedisKey, "{broken"); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	store := NewRedisStore(rdb, "")
	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load should self-heal, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected absent session, got %+v", rec)
	}
	if mr.Exists(DefaultRedisKey) {
		t.Fatal("corrupt blob should have been purged")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	store := NewRedisStore(rdb, "custom:key")
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected store unavailable error")
	}
}
