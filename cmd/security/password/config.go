package password

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Params controls Argon2id hashing cost. Memory is in KiB as required by
// argon2.IDKey.
type Params struct {
	MemoryKiB   uint32 `env:"ARGON2_MEMORY_KIB" envDefault:"65536"`
	Iterations  uint32 `env:"ARGON2_ITERATIONS" envDefault:"3"`
	Parallelism uint8  `env:"ARGON2_PARALLELISM"`
	SaltLength  uint32 `env:"ARGON2_SALT_LEN" envDefault:"16"`
	KeyLength   uint32 `env:"ARGON2_KEY_LEN" envDefault:"32"`
}

// Policy bounds accepted password lengths. Lengths are counted in runes.
type Policy struct {
	MinLength int `env:"PASSWORD_MIN_LEN" envDefault:"8"`
	MaxLength int `env:"PASSWORD_MAX_LEN" envDefault:"256"`
}

// Config is the single configuration surface for this package.
type Config struct {
	Params Params `envPrefix:"CHIRPY_"`
	Policy Policy `envPrefix:"CHIRPY_"`
}

// DefaultConfig returns a safe baseline for interactive logins.
// Parallelism follows the host CPU count, clamped to [1..4] so resource
// usage stays predictable in containers.
func DefaultConfig() Config {
	threads := runtime.NumCPU()
	if threads < 1 {
		threads = 1
	}
	if threads > 4 {
		threads = 4
	}

	return Config{
		Params: Params{
			MemoryKiB:   64 * 1024,
			Iterations:  3,
			Parallelism: uint8(threads),
			SaltLength:  16,
			KeyLength:   32,
		},
		Policy: Policy{
			MinLength: 8,
			MaxLength: 256,
		},
	}
}

// FromEnv loads config from CHIRPY_ARGON2_* / CHIRPY_PASSWORD_* variables,
// falling back to DefaultConfig values, and rejects settings outside safe
// bounds. A zero or minimal work factor cannot be configured.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("password config: %w", err)
	}
	if cfg.Params.Parallelism == 0 {
		cfg.Params.Parallelism = DefaultConfig().Params.Parallelism
	}

	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) check() error {
	p := c.Params
	if p.MemoryKiB < 8*1024 || p.MemoryKiB > 1024*1024 {
		return fmt.Errorf("password config: memory %d KiB out of range [8192..1048576]", p.MemoryKiB)
	}
	if p.Iterations < 1 || p.Iterations > 20 {
		return fmt.Errorf("password config: iterations %d out of range [1..20]", p.Iterations)
	}
	if p.SaltLength < 8 || p.SaltLength > 64 {
		return fmt.Errorf("password config: salt length %d out of range [8..64]", p.SaltLength)
	}
	if p.KeyLength < 16 || p.KeyLength > 64 {
		return fmt.Errorf("password config: key length %d out of range [16..64]", p.KeyLength)
	}
	if c.Policy.MinLength < 1 || c.Policy.MinLength > c.Policy.MaxLength {
		return fmt.Errorf("password policy invalid: min_len(%d) > max_len(%d)", c.Policy.MinLength, c.Policy.MaxLength)
	}
	return nil
}
