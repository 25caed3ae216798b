package wavelettrie

import (
	"github.com/uber-go/tally"
	"go.uber.org/zap"
)

// Configuration is the YAML form of Options.
type Configuration struct {
	// Target number of bits per block of a branch bit vector.
	BlockBits int `yaml:"blockBits"`
}

// NewOptions builds validated options from the configuration.
// A nil scope or logger keeps the default.
func (c Configuration) NewOptions(scope tally.Scope, logger *zap.Logger) (Options, error) {
	opts := NewOptions()
	if c.BlockBits != 0 {
		opts = opts.SetBlockBits(c.BlockBits)
	}
	if scope != nil {
		opts = opts.SetMetricsScope(scope)
	}
	if logger != nil {
		opts = opts.SetLogger(logger)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
