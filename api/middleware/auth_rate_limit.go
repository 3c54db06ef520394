package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mlegrand/equilog-backend/api/responses"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// RateLimiterStore is the counter backend for auth throttling, satisfied by
// the redis client. Pass a nil interface to disable the limiter.
type RateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy describes the quota for one auth surface. An IP quota
// caps attempts per source address; an email quota caps attempts per target
// account regardless of where they come from.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy. A zero limit disables that
// dimension; a zero window disables the policy entirely.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

func (p AuthRateLimitPolicy) counterKey(dimension, value string) string {
	if value == "" {
		return ""
	}
	return "rl:" + dimension + ":" + p.normalizedName() + ":" + value
}

// AuthRateLimit throttles an auth endpoint per the policy. The request body
// is buffered and restored when the email dimension is active so downstream
// handlers still see it.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if policy.ipLimit > 0 {
				ip := clientIP(r)
				blocked, err := overQuota(ctx, store, policy, "ip", ip, policy.ipLimit, logg)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if blocked {
					responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
					return
				}
			}

			if policy.emailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if email := normalizeEmail(extractEmail(body)); email != "" {
					hash := hashValue(email)
					blocked, err := overQuota(ctx, store, policy, "email", hash, policy.emailLimit, logg)
					if err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if blocked {
						responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// overQuota bumps the counter for one dimension and reports whether the
// caller is past its limit, logging the block when a logger is present.
func overQuota(ctx context.Context, store RateLimiterStore, policy AuthRateLimitPolicy, dimension, value string, limit int, logg *logger.Logger) (bool, error) {
	key := policy.counterKey(dimension, value)
	if key == "" {
		return false, nil
	}

	count, err := store.IncrWithTTL(ctx, key, policy.window)
	if err != nil {
		return false, err
	}
	if count <= int64(limit) {
		return false, nil
	}

	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          dimension,
			"policy":         policy.normalizedName(),
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
			"key":            value,
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	return true, nil
}

// clientIP prefers proxy headers over the socket address since the API runs
// behind a load balancer in every deployed environment.
func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// hashValue keeps raw emails out of redis keys and logs.
func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
