// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "github.com/rs/zerolog"

// NormalizationRule selects how a node factory extracts the common factor
// from a set of candidate outgoing edges. Both variants appear in the
// reference material this engine is built from; a session picks one at
// construction time and never mixes rules within a graph, since mixing
// would break canonicity.
type NormalizationRule int

const (
	// RuleFirstNonzero divides by the first nonzero outgoing edge weight.
	RuleFirstNonzero NormalizationRule = iota
	// RuleLargestMagnitude divides by the outgoing edge whose weight has
	// maximal squared magnitude, breaking ties by edge position.
	RuleLargestMagnitude
)

// configs stores the values of the different parameters of a Session.
type configs struct {
	qubits        int
	rule          NormalizationRule
	decimals      int
	seed          int64
	seeded        bool
	nodesize      int
	complexsize   int
	cachesize     int
	logger        zerolog.Logger
}

func makeconfigs(qubits int) *configs {
	c := &configs{
		qubits:      qubits,
		rule:        RuleFirstNonzero,
		decimals:    6,
		nodesize:    2*qubits + 2,
		complexsize: 64,
		cachesize:   1024,
		logger:      zerolog.Nop(),
	}
	return c
}

// Option configures a Session. Options are applied in order, so a later
// option overrides an earlier one for the same field.
type Option func(*configs)

// Normalization is a configuration option. Used as a parameter of New, it
// picks the normalization rule used by the node factory. The default is
// RuleFirstNonzero.
func Normalization(rule NormalizationRule) Option {
	return func(c *configs) { c.rule = rule }
}

// Decimals is a configuration option. Used as a parameter of New, it sets
// the number of decimal places amplitudes are rounded to when read out by
// the strong simulator. Must be in [0, 10]; an out-of-range value is
// silently ignored, leaving the previous setting (default 6) in place, and
// never fails the constructor.
func Decimals(d int) Option {
	return func(c *configs) {
		if d >= 0 && d <= 10 {
			c.decimals = d
		}
	}
}

// Seed is a configuration option. Used as a parameter of New, it fixes the
// pseudorandom seed used by the weak simulator. Without this option a
// session derives its own seed (from the current time, via NewRng) and
// records it so runs remain reproducible after the fact.
func Seed(seed int64) Option {
	return func(c *configs) {
		c.seed = seed
		c.seeded = true
	}
}

// Nodesize is a configuration option. Used as a parameter of New, it sets a
// preferred initial capacity for the node table's backing arena. The table
// grows automatically; this is purely a preallocation hint.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.qubits+2 {
			c.nodesize = size
		}
	}
}

// Complexsize is a configuration option. Used as a parameter of New, it
// sets a preferred initial capacity for the ComplexTable's backing arena.
func Complexsize(size int) Option {
	return func(c *configs) {
		if size >= 9 {
			c.complexsize = size
		}
	}
}

// Cachesize is a configuration option. Used as a parameter of New, it sets
// the initial number of entries preallocated in the add/multiply op
// caches.
func Cachesize(size int) Option {
	return func(c *configs) {
		c.cachesize = size
	}
}

// WithLogger is a configuration option. Used as a parameter of New, it
// attaches a zerolog.Logger the session uses for debug-level tracing of
// node-table hits/misses, cache hits/misses, and resets. The default is a
// disabled (no-op) logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *configs) { c.logger = l }
}
