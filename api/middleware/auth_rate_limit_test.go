package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
)

type memoryRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryRateStore() *memoryRateStore {
	return &memoryRateStore{counts: map[string]int64{}}
}

func (m *memoryRateStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func limitedHandler(policy AuthRateLimitPolicy, store RateLimiterStore, next http.HandlerFunc) http.Handler {
	if next == nil {
		next = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}
	}
	return AuthRateLimit(policy, store, nil)(next)
}

func postLogin(handler http.Handler, email, remoteAddr string) *httptest.ResponseRecorder {
	body := `{"email":"` + email + `","password":"horses-forever"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitBodyStillReadableDownstream(t *testing.T) {
	var seen string
	handler := limitedHandler(
		NewAuthRateLimitPolicy("login", time.Minute, 3, 3),
		newMemoryRateStore(),
		func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			seen = string(raw)
			w.WriteHeader(http.StatusOK)
		},
	)

	rec := postLogin(handler, "claire@stable.example", "10.0.0.9:4100")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(seen, `"email":"claire@stable.example"`) {
		t.Fatalf("downstream handler saw mangled body: %s", seen)
	}
}

func TestAuthRateLimitBlocksEmailAfterQuota(t *testing.T) {
	handler := limitedHandler(NewAuthRateLimitPolicy("login", time.Minute, 0, 2), newMemoryRateStore(), nil)

	for i := 0; i < 2; i++ {
		if rec := postLogin(handler, "repeat@stable.example", "10.0.0.1:9000"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := postLogin(handler, "repeat@stable.example", "10.0.0.1:9000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after quota, got %d", rec.Code)
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("unexpected error code: %s", payload.Error.Code)
	}
}

func TestAuthRateLimitBlocksIPAfterQuota(t *testing.T) {
	handler := limitedHandler(NewAuthRateLimitPolicy("register", time.Minute, 1, 0), newMemoryRateStore(), nil)

	if rec := postLogin(handler, "first@stable.example", "172.16.4.4:2200"); rec.Code != http.StatusOK {
		t.Fatalf("first attempt: expected 200, got %d", rec.Code)
	}

	// A different email from the same address still counts against the IP.
	if rec := postLogin(handler, "second@stable.example", "172.16.4.4:2200"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for second request from same IP, got %d", rec.Code)
	}
}

func TestAuthRateLimitDisabledWithoutStore(t *testing.T) {
	handler := limitedHandler(NewAuthRateLimitPolicy("login", time.Minute, 1, 1), nil, nil)

	for i := 0; i < 5; i++ {
		if rec := postLogin(handler, "unlimited@stable.example", "10.0.0.2:3000"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected limiter to be disabled, got %d", i+1, rec.Code)
		}
	}
}
