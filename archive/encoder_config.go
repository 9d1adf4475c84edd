package archive

import (
	"fmt"

	"github.com/arloliu/glz"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/format"
	"github.com/arloliu/glz/internal/options"
	"github.com/arloliu/glz/section"
)

// EncoderConfig holds the container layout choices and the engine options of an Encoder.
type EncoderConfig struct {
	flag       section.Flag
	engineOpts []glz.Option
	engine     *glz.GLZ
	progress   glz.Progress
}

// EncoderOption is a functional option for configuring an Encoder.
//
// This is a type alias for the generic Option interface specialized for EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

func newEncoderConfig(opts []EncoderOption) (*EncoderConfig, error) {
	cfg := &EncoderConfig{flag: section.NewFlag()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.engine != nil && len(cfg.engineOpts) > 0 {
		return nil, fmt.Errorf("%w: WithEngine cannot be combined with engine parameters", errs.ErrInvalidConfig)
	}

	return cfg, nil
}

// WithK fixes the Golomb-Rice parameter of the trained engine.
func WithK(k int) EncoderOption {
	return withEngineOption(glz.WithK(k))
}

// WithL sets the reference length exponent of the trained engine.
func WithL(l int) EncoderOption {
	return withEngineOption(glz.WithL(l))
}

// WithM sets the offset chunk width of the trained engine.
func WithM(m int) EncoderOption {
	return withEngineOption(glz.WithM(m))
}

// WithTable fixes the decode table of the trained engine.
func WithTable(table []uint32) EncoderOption {
	return withEngineOption(glz.WithTable(table))
}

// WithPasses sets the number of training passes over the input.
func WithPasses(n int) EncoderOption {
	return withEngineOption(glz.WithPasses(n))
}

func withEngineOption(opt glz.Option) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.engineOpts = append(c.engineOpts, opt)
	})
}

// WithEngine encodes with a prebuilt engine instead of training one on the input.
func WithEngine(g *glz.GLZ) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if g == nil {
			return fmt.Errorf("%w: nil engine", errs.ErrInvalidConfig)
		}
		c.engine = g

		return nil
	})
}

// WithArchiveNames stores the name of every file as an extra slice in the blob.
func WithArchiveNames() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.flag.Kind = format.KindArchive
	})
}

// WithIndexCompression sets the codec applied to the index section.
func WithIndexCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.flag.IndexCompression = comp
			return nil
		default:
			return fmt.Errorf("%w: %v", errs.ErrInvalidCompressionType, comp)
		}
	})
}

// WithVarintIndex stores index fields as unsigned LEB128 varints.
func WithVarintIndex() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.flag.SetIndexEncoding(format.IndexVarint)
	})
}

// WithChecksums stores a murmur3 checksum of every decoded entry.
func WithChecksums() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.flag.SetHasChecksums(true)
	})
}

// WithLittleEndian stores fixed index fields in little-endian order (default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.flag.WithLittleEndian()
	})
}

// WithBigEndian stores fixed index fields in big-endian order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.flag.WithBigEndian()
	})
}

// WithProgress reports encoding progress of the blob.
func WithProgress(p glz.Progress) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.progress = p
	})
}
