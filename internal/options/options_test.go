package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errRange = errors.New("out of range")

type codecConfig struct {
	k     int
	l     int
	names bool
	calls []string
}

func withK(k int) Option[*codecConfig] {
	return New(func(c *codecConfig) error {
		if k < 0 || k > 32 {
			return errRange
		}
		c.k = k
		c.calls = append(c.calls, "k")

		return nil
	})
}

func withL(l int) Option[*codecConfig] {
	return NoError(func(c *codecConfig) {
		c.l = l
		c.calls = append(c.calls, "l")
	})
}

func withNames() Option[*codecConfig] {
	return NoError(func(c *codecConfig) {
		c.names = true
		c.calls = append(c.calls, "names")
	})
}

func TestApply(t *testing.T) {
	t.Run("No options", func(t *testing.T) {
		cfg := &codecConfig{k: 9, l: 5}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 9, cfg.k)
		require.Equal(t, 5, cfg.l)
	})

	t.Run("Applies in order", func(t *testing.T) {
		cfg := &codecConfig{}
		require.NoError(t, Apply(cfg, withK(6), withL(3), withNames(), withK(7)))
		require.Equal(t, 7, cfg.k, "later options win")
		require.Equal(t, 3, cfg.l)
		require.True(t, cfg.names)
		require.Equal(t, []string{"k", "l", "names", "k"}, cfg.calls)
	})

	t.Run("Stops at first error", func(t *testing.T) {
		cfg := &codecConfig{}
		err := Apply(cfg, withL(4), withK(33), withNames())
		require.ErrorIs(t, err, errRange)
		require.Equal(t, 4, cfg.l)
		require.False(t, cfg.names)
		require.Equal(t, []string{"l"}, cfg.calls)
	})

	t.Run("Option slices", func(t *testing.T) {
		opts := []Option[*codecConfig]{withK(1), withL(2)}
		cfg := &codecConfig{}
		require.NoError(t, Apply(cfg, opts...))
		require.Equal(t, 1, cfg.k)
		require.Equal(t, 2, cfg.l)
	})
}

func TestFunc_Reusable(t *testing.T) {
	opt := withK(12)

	a, b := &codecConfig{}, &codecConfig{}
	require.NoError(t, Apply(a, opt))
	require.NoError(t, Apply(b, opt))
	require.Equal(t, 12, a.k)
	require.Equal(t, 12, b.k)
}
