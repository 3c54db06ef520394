package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCmdable struct {
	data        map[string]string
	counters    map[string]int64
	expireCalls []string
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{data: map[string]string{}, counters: map[string]int64{}}
}

func (f *fakeCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, _ time.Duration) *redis.BoolCmd {
	f.expireCalls = append(f.expireCalls, key)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestFixedWindowAllowCountsAndBlocks(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCmdable()
	client := &Client{store: fake}

	for attempt := int64(1); attempt <= 2; attempt++ {
		allowed, count, err := client.FixedWindowAllow(ctx, "login:1.2.3.4", 2, time.Second)
		if err != nil {
			t.Fatalf("attempt %d: %v", attempt, err)
		}
		if !allowed || count != attempt {
			t.Fatalf("attempt %d: allowed=%v count=%d", attempt, allowed, count)
		}
	}

	allowed, _, err := client.FixedWindowAllow(ctx, "login:1.2.3.4", 2, time.Second)
	if err != nil {
		t.Fatalf("third attempt: %v", err)
	}
	if allowed {
		t.Fatal("third attempt should be over the limit")
	}

	// The window TTL is stamped exactly once, on the increment that created
	// the key.
	if len(fake.expireCalls) != 1 {
		t.Fatalf("expected one expire call, got %d", len(fake.expireCalls))
	}
}

func TestSetGetDelRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newFakeCmdable()}

	key := client.AccessSessionKey("access-1")
	if err := client.Set(ctx, key, "user-1", 10*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "user-1" {
		t.Fatalf("got %q, want user-1", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestKeysAreNamespaced(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("login"); got != "eql:rate_limit:login" {
		t.Fatalf("rate limit key: %s", got)
	}
	if got := client.AccessSessionKey("abc"); got != "eql:session:access:abc" {
		t.Fatalf("session key: %s", got)
	}
}

func TestNilClientReturnsErrorsNotPanics(t *testing.T) {
	var client *Client
	ctx := context.Background()

	if err := client.Set(ctx, "k", "v", 0); err == nil {
		t.Fatal("expected error from nil client Set")
	}
	if _, err := client.Get(ctx, "k"); err == nil {
		t.Fatal("expected error from nil client Get")
	}
	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected error from nil client Ping")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client Close should be a no-op, got %v", err)
	}
}
