package password

import (
	"testing"
)

func TestDefaultConfigIsSafe(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.check(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if cfg.Params.Iterations < 1 {
		t.Fatalf("default work factor must never be a no-op")
	}
	if cfg.Params.Parallelism < 1 || cfg.Params.Parallelism > 4 {
		t.Fatalf("parallelism %d outside clamp [1..4]", cfg.Params.Parallelism)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CHIRPY_ARGON2_MEMORY_KIB", "16384")
	t.Setenv("CHIRPY_ARGON2_ITERATIONS", "2")
	t.Setenv("CHIRPY_PASSWORD_MIN_LEN", "10")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Params.MemoryKiB != 16384 {
		t.Fatalf("memory = %d, want 16384", cfg.Params.MemoryKiB)
	}
	if cfg.Params.Iterations != 2 {
		t.Fatalf("iterations = %d, want 2", cfg.Params.Iterations)
	}
	if cfg.Policy.MinLength != 10 {
		t.Fatalf("min length = %d, want 10", cfg.Policy.MinLength)
	}
}

func TestFromEnvRejectsNoOpWorkFactor(t *testing.T) {
	t.Setenv("CHIRPY_ARGON2_ITERATIONS", "0")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected zero iterations to be rejected")
	}
}

func TestFromEnvRejectsTinyMemory(t *testing.T) {
	t.Setenv("CHIRPY_ARGON2_MEMORY_KIB", "1024")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected undersized memory to be rejected")
	}
}
