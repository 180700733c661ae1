package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"airplane-seating-cli/model"
)

// fakeRedis implements the two commands RedisBackend issues; every other
// Cmdable method panics through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	values map[string][]byte
	ttl    map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = append([]byte(nil), value.([]byte)...)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisBackend_NotFound(t *testing.T) {
	backend := NewRedisBackend(newFakeRedis(), "")

	_, err := backend.Read(context.Background())
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestRedisBackend_RoundTripWithoutExpiry(t *testing.T) {
	client := newFakeRedis()
	st := NewStateStore(NewRedisBackend(client, ""))

	inv := model.NewInventory()
	if err := inv.Occupy([]string{"6A"}, []string{"Dana"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := st.Save(context.Background(), inv); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, ok := client.values[DefaultRedisKey]; !ok {
		t.Fatalf("expected state under %s", DefaultRedisKey)
	}
	if client.ttl[DefaultRedisKey] != 0 {
		t.Fatalf("expected no expiry, got %v", client.ttl[DefaultRedisKey])
	}

	loaded, found, err := st.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("expected saved state, got found=%v err=%v", found, err)
	}
	assertSameSeats(t, inv, loaded)
}

func TestRedisBackend_PropagatesClientErrors(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("connection refused")
	st := NewStateStore(NewRedisBackend(client, "custom"))

	if err := st.Save(context.Background(), model.NewInventory()); err == nil {
		t.Fatal("expected save error")
	}
	_, found, err := st.Load(context.Background())
	if err == nil || found {
		t.Fatalf("expected load error, got found=%v err=%v", found, err)
	}
	if errors.Is(err, model.ErrCorruptState) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
