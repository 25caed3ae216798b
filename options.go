package wavelettrie

import (
	"github.com/pkg/errors"
	"github.com/uber-go/tally"
	"go.uber.org/zap"

	"github.com/AlexWan0/go-wavelettrie/bitvector"
)

// Options configures a Trie.
type Options interface {
	// Validate checks the options.
	Validate() error

	// SetBlockBits sets the target block size of every branch bit vector.
	SetBlockBits(value int) Options

	// BlockBits returns the target block size of every branch bit vector.
	BlockBits() int

	// SetLogger sets the logger.
	SetLogger(value *zap.Logger) Options

	// Logger returns the logger.
	Logger() *zap.Logger

	// SetMetricsScope sets the metrics scope.
	SetMetricsScope(value tally.Scope) Options

	// MetricsScope returns the metrics scope.
	MetricsScope() tally.Scope
}

type options struct {
	blockBits int
	logger    *zap.Logger
	scope     tally.Scope
}

// NewOptions returns options with default values.
func NewOptions() Options {
	return &options{
		blockBits: bitvector.DefaultBlockBits,
		logger:    zap.NewNop(),
		scope:     tally.NoopScope,
	}
}

func (o *options) Validate() error {
	if o.blockBits < bitvector.MinBlockBits || o.blockBits%64 != 0 {
		return errors.Errorf("invalid block bits %d: must be a multiple of 64 and at least %d",
			o.blockBits, bitvector.MinBlockBits)
	}
	if o.logger == nil {
		return errors.New("no logger set")
	}
	if o.scope == nil {
		return errors.New("no metrics scope set")
	}
	return nil
}

func (o *options) SetBlockBits(value int) Options {
	opts := *o
	opts.blockBits = value
	return &opts
}

func (o *options) BlockBits() int {
	return o.blockBits
}

func (o *options) SetLogger(value *zap.Logger) Options {
	opts := *o
	opts.logger = value
	return &opts
}

func (o *options) Logger() *zap.Logger {
	return o.logger
}

func (o *options) SetMetricsScope(value tally.Scope) Options {
	opts := *o
	opts.scope = value
	return &opts
}

func (o *options) MetricsScope() tally.Scope {
	return o.scope
}
