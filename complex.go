// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// ComplexID is a stable index into a ComplexTable. Equality of value is
// equality of index: two ComplexIDs compare equal if and only if the
// values they name are the same element of the ring ℚ(√2, i).
type ComplexID int32

// complexValue is the canonical five-integer representation of
// ((A + B/√2) + (C + D/√2)·i) / E, with E > 0 and gcd(|A|,|B|,|C|,|D|,|E|) = 1.
type complexValue struct {
	A, B, C, D, E int64
}

// Well-known indices, assigned in this order during table initialization.
const (
	ZERO    ComplexID = 0
	ONE     ComplexID = 1
	HALFSQ2 ComplexID = 2 // 1/√2
	NEGONE  ComplexID = 3
	IMAG    ComplexID = 4
	NEGIMAG ComplexID = 5
	NEGHSQ2 ComplexID = 6 // -1/√2
	PLUSI   ComplexID = 7 // (1+i)/√2
	MINUSI  ComplexID = 8 // (1-i)/√2
)

var wellKnown = [9]complexValue{
	{0, 0, 0, 0, 1},  // ZERO
	{1, 0, 0, 0, 1},  // ONE
	{0, 1, 0, 0, 1},  // 1/√2
	{-1, 0, 0, 0, 1}, // -1
	{0, 0, 1, 0, 1},  // i
	{0, 0, -1, 0, 1}, // -i
	{0, -1, 0, 0, 1}, // -1/√2
	{0, 1, 0, 1, 1},  // (1+i)/√2
	{0, 1, 0, -1, 1}, // (1-i)/√2
}

// ComplexTable interns canonical five-tuples of the exact ring ℚ(√2, i) to
// stable ComplexIDs, the way NodeTable interns QMDD nodes: structurally
// equal values always collapse to the same index.
type ComplexTable struct {
	values []complexValue
	unique map[complexValue]ComplexID

	addCache map[pairKey]ComplexID
	mulCache map[pairKey]ComplexID

	hit, miss int64
	logger    zerolog.Logger
}

// pairKey is the canonical (commutative) cache key for a binary op over
// two ComplexIDs, mirroring the sorted-operand-pair convention of the
// add/ite caches this engine's node-table ancestor uses.
type pairKey struct {
	lo, hi ComplexID
}

func newPairKey(a, b ComplexID) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// NewComplexTable builds a ComplexTable preloaded with the nine well-known
// constants, preallocated to hold about capacity entries.
func NewComplexTable(capacity int, logger zerolog.Logger) *ComplexTable {
	if capacity < len(wellKnown) {
		capacity = len(wellKnown)
	}
	t := &ComplexTable{
		values:   make([]complexValue, 0, capacity),
		unique:   make(map[complexValue]ComplexID, capacity),
		addCache: make(map[pairKey]ComplexID, capacity),
		mulCache: make(map[pairKey]ComplexID, capacity),
		logger:   logger,
	}
	for _, v := range wellKnown {
		t.insert(v)
	}
	return t
}

// Reset voids the table and reseeds the well-known constants, matching the
// session-level Reset operation: no value interned before a Reset remains
// valid afterwards.
func (t *ComplexTable) Reset() {
	t.values = t.values[:0]
	t.unique = make(map[complexValue]ComplexID, cap(t.values))
	t.addCache = make(map[pairKey]ComplexID)
	t.mulCache = make(map[pairKey]ComplexID)
	t.hit, t.miss = 0, 0
	for _, v := range wellKnown {
		t.insert(v)
	}
	t.logger.Debug().Msg("complex table reset")
}

func gcd2(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func gcd5(a, b, c, d, e int64) int64 {
	g := gcd2(a, b)
	g = gcd2(g, c)
	g = gcd2(g, d)
	g = gcd2(g, e)
	return g
}

// canonicalize reduces v by the gcd of its five components and folds the
// sign of E into the other four so that E > 0, per §3's canonical form.
func canonicalize(v complexValue) complexValue {
	if v.A == 0 && v.B == 0 && v.C == 0 && v.D == 0 {
		return complexValue{0, 0, 0, 0, 1}
	}
	if v.E < 0 {
		v.A, v.B, v.C, v.D, v.E = -v.A, -v.B, -v.C, -v.D, -v.E
	}
	g := gcd5(v.A, v.B, v.C, v.D, v.E)
	if g > 1 {
		v.A, v.B, v.C, v.D, v.E = v.A/g, v.B/g, v.C/g, v.D/g, v.E/g
	}
	return v
}

// insert interns an already-canonical value, returning its index.
func (t *ComplexTable) insert(v complexValue) ComplexID {
	if id, ok := t.unique[v]; ok {
		t.hit++
		t.logger.Debug().Int64("id", int64(id)).Msg("complex table hit")
		return id
	}
	t.miss++
	id := ComplexID(len(t.values))
	t.values = append(t.values, v)
	t.unique[v] = id
	t.logger.Debug().Int64("id", int64(id)).Msg("complex table miss")
	return id
}

// intern canonicalizes v and interns it.
func (t *ComplexTable) intern(v complexValue) ComplexID {
	return t.insert(canonicalize(v))
}

func (t *ComplexTable) valueOf(id ComplexID) (complexValue, error) {
	if id < 0 || int(id) >= len(t.values) {
		return complexValue{}, fmt.Errorf("%w: complex index %d", ErrInvalidIndex, id)
	}
	return t.values[id], nil
}

// Re returns the real part of id as a float64.
func (t *ComplexTable) Re(id ComplexID) (float64, error) {
	v, err := t.valueOf(id)
	if err != nil {
		return 0, err
	}
	return (float64(v.A) + float64(v.B)/math.Sqrt2) / float64(v.E), nil
}

// Im returns the imaginary part of id as a float64.
func (t *ComplexTable) Im(id ComplexID) (float64, error) {
	v, err := t.valueOf(id)
	if err != nil {
		return 0, err
	}
	return (float64(v.C) + float64(v.D)/math.Sqrt2) / float64(v.E), nil
}

// Mag2 returns the squared magnitude |id|² as a float64.
func (t *ComplexTable) Mag2(id ComplexID) (float64, error) {
	re, err := t.Re(id)
	if err != nil {
		return 0, err
	}
	im, err := t.Im(id)
	if err != nil {
		return 0, err
	}
	return re*re + im*im, nil
}

// ArgMax returns the element of ids with maximal squared magnitude,
// breaking ties in favor of the earliest element, per §4.1.
func (t *ComplexTable) ArgMax(ids []ComplexID) (ComplexID, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyInput
	}
	best := ids[0]
	bestMag, err := t.Mag2(best)
	if err != nil {
		return 0, err
	}
	for _, id := range ids[1:] {
		m, err := t.Mag2(id)
		if err != nil {
			return 0, err
		}
		if m > bestMag {
			best, bestMag = id, m
		}
	}
	return best, nil
}

// Conj returns the complex conjugate of id (flips the sign of its i and
// i/√2 components).
func (t *ComplexTable) Conj(id ComplexID) (ComplexID, error) {
	v, err := t.valueOf(id)
	if err != nil {
		return 0, err
	}
	return t.intern(complexValue{v.A, v.B, -v.C, -v.D, v.E}), nil
}
