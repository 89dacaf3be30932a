package interpolate

import (
	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/internal/housenumber"
)

// ParserFunc normalizes a raw house-number string into a positive integer.
// Returning false marks the string invalid; the record is logged and
// skipped.
type ParserFunc func(raw string) (int, bool)

// options collects augmenter configuration.
type options struct {
	parser ParserFunc
	logger zerolog.Logger
}

func defaultOptions() options {
	return options{
		parser: housenumber.Normalize,
		logger: zerolog.Nop(),
	}
}

// Option configures an Augmenter.
type Option func(*options)

// WithParser replaces the built-in house-number parser.
//
// Use this when numbers need locale-specific normalization the default
// digit-prefix parser does not handle.
func WithParser(parser ParserFunc) Option {
	return func(o *options) {
		o.parser = parser
	}
}

// WithLogger sets the diagnostics logger. The augmenter writes to it only
// on skip events (unparseable number, malformed coordinate, failed match,
// undecodable or degenerate candidate street).
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
