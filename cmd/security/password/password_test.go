package password

import (
	"errors"
	"strings"
	"testing"
)

// testConfig keeps hashing cheap enough for CI while staying above no-op cost.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Params.MemoryKiB = 8 * 1024
	cfg.Params.Iterations = 1
	return cfg
}

func TestHashAndVerify(t *testing.T) {
	cfg := testConfig()

	hash, err := cfg.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := cfg.Verify(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}

	ok, err = cfg.Verify(hash, "wrong password")
	if err != nil {
		t.Fatalf("Verify mismatch: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHashUniquePerCall(t *testing.T) {
	cfg := testConfig()

	h1, err := cfg.Hash("same-password-1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := cfg.Hash("same-password-1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("identical hashes for identical input; salt not applied")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	cfg := testConfig()

	for _, bad := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5",
	} {
		if _, err := cfg.Verify(bad, "whatever"); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("Verify(%q): expected ErrInvalidHash, got %v", bad, err)
		}
	}
}

func TestPolicyBounds(t *testing.T) {
	cfg := testConfig()

	if _, err := cfg.Hash("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	long := strings.Repeat("x", cfg.Policy.MaxLength+1)
	if _, err := cfg.Hash(long); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}
