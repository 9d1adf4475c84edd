package glz

import (
	"fmt"
	"slices"

	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/internal/options"
	"github.com/arloliu/glz/rice"
)

// Configuration defaults and limits.
const (
	// DefaultL is the default reference length exponent: references cover 2..2^L+1 bytes.
	DefaultL = 5
	// DefaultM is the default number of payload bits per offset chunk.
	DefaultM = 3
	// DefaultPasses is the default number of training passes used by FromSeed.
	DefaultPasses = 1

	MaxL      = 16
	MaxM      = 16
	MaxPasses = 16
)

// Config holds the parameters used to build a GLZ instance.
type Config struct {
	k        int
	hasK     bool
	l        int
	m        int
	table    []uint32
	hasTable bool
	passes   int
}

// Option configures a GLZ instance.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		l:      DefaultL,
		m:      DefaultM,
		passes: DefaultPasses,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.hasTable && uint64(len(cfg.table)) > uint64(AlphabetSize(cfg.l)) {
		return nil, fmt.Errorf("%w: table of %d entries for alphabet of %d",
			errs.ErrInvalidTable, len(cfg.table), AlphabetSize(cfg.l))
	}

	return cfg, nil
}

// WithK fixes the Golomb-Rice parameter. Without it k is fitted to training
// data, or set to the neutral width of the operation alphabet.
func WithK(k int) Option {
	return options.New(func(c *Config) error {
		if k < 0 || k > rice.MaxK {
			return fmt.Errorf("%w: k=%d out of [0, %d]", errs.ErrInvalidConfig, k, rice.MaxK)
		}
		c.k = k
		c.hasK = true

		return nil
	})
}

// WithL sets the reference length exponent.
func WithL(l int) Option {
	return options.New(func(c *Config) error {
		if l < 1 || l > MaxL {
			return fmt.Errorf("%w: l=%d out of [1, %d]", errs.ErrInvalidConfig, l, MaxL)
		}
		c.l = l

		return nil
	})
}

// WithM sets the number of payload bits per offset chunk.
func WithM(m int) Option {
	return options.New(func(c *Config) error {
		if m < 1 || m > MaxM {
			return fmt.Errorf("%w: m=%d out of [1, %d]", errs.ErrInvalidConfig, m, MaxM)
		}
		c.m = m

		return nil
	})
}

// WithTable fixes the decode table (rank to symbol) of the symbol remap.
// The table must be a permutation of [0, len(table)) no longer than the
// operation alphabet.
func WithTable(table []uint32) Option {
	return options.NoError(func(c *Config) {
		c.table = slices.Clone(table)
		c.hasTable = true
	})
}

// WithPasses sets how many encode-and-refit rounds FromSeed runs.
func WithPasses(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 || n > MaxPasses {
			return fmt.Errorf("%w: passes=%d out of [1, %d]", errs.ErrInvalidConfig, n, MaxPasses)
		}
		c.passes = n

		return nil
	})
}
