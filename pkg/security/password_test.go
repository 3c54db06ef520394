package security_test

import (
	"strings"
	"testing"

	"github.com/mlegrand/equilog-backend/pkg/config"
	"github.com/mlegrand/equilog-backend/pkg/security"
)

func argonTestConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := security.HashPassword("stable-yard-password", argonTestConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := security.VerifyPassword("stable-yard-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword on valid hash: %v", err)
	}
	if !ok {
		t.Fatal("correct password did not verify")
	}

	ok, err = security.VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword on wrong password: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	cfg := argonTestConfig()
	first, err := security.HashPassword("same-input", cfg)
	if err != nil {
		t.Fatalf("first hash: %v", err)
	}
	second, err := security.HashPassword("same-input", cfg)
	if err != nil {
		t.Fatalf("second hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical, salt is not random")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, bad := range []string{"", "not-a-hash", "$argon2id$v=19$corrupt"} {
		if _, err := security.VerifyPassword("irrelevant", bad); err == nil {
			t.Fatalf("expected error for malformed hash %q", bad)
		}
	}
}
