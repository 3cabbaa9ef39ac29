// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// addKey is the canonical (commutative) memoization key for Add, built
// from the two operand edges sorted into a stable order so that
// Add(a, b) and Add(b, a) always hit the same cache entry.
type addKey struct {
	kind   Kind
	d0, d1 NodeID
	w0, w1 ComplexID
}

func newAddKey(kind Kind, e0, e1 Edge) addKey {
	if e0.Dest > e1.Dest || (e0.Dest == e1.Dest && e0.Weight > e1.Weight) {
		e0, e1 = e1, e0
	}
	return addKey{kind: kind, d0: e0.Dest, d1: e1.Dest, w0: e0.Weight, w1: e1.Weight}
}

// mulKey is the memoization key for Multiply: operand order matters,
// since matrix multiplication is not commutative.
type mulKey struct {
	rightKind     Kind
	leftDest      NodeID
	rightDest     NodeID
	leftW, rightW ComplexID
}

// Caches is the set of memoization tables shared across add/multiply
// calls within a session, mirroring the applycache/itecache split of this
// engine's BDD ancestor (one cache per operation shape rather than one
// generic cache keyed by an operator tag). Add and Multiply keep separate
// hit/miss counters, since they are reported separately by Session.Stats.
type Caches struct {
	add    map[addKey]Edge
	mulVec map[mulKey]Edge
	mulMat map[mulKey]Edge

	addHit, addMiss int64
	mulHit, mulMiss int64
}

// NewCaches builds an empty set of op caches preallocated for about
// capacity entries each.
func NewCaches(capacity int) *Caches {
	return &Caches{
		add:    make(map[addKey]Edge, capacity),
		mulVec: make(map[mulKey]Edge, capacity),
		mulMat: make(map[mulKey]Edge, capacity),
	}
}

// Reset voids the op caches; called together with ComplexTable.Reset and
// NodeTable.Reset by Session.Reset, since a cached Edge or ComplexID from
// a previous arena generation is meaningless once that arena is gone.
func (c *Caches) Reset() {
	c.add = make(map[addKey]Edge, len(c.add))
	c.mulVec = make(map[mulKey]Edge, len(c.mulVec))
	c.mulMat = make(map[mulKey]Edge, len(c.mulMat))
	c.addHit, c.addMiss = 0, 0
	c.mulHit, c.mulMiss = 0, 0
}

// Add computes e0 + e1, two edges of the same rank (kind), per §4.3.
func (e *Engine) Add(c *Caches, kind Kind, e0, e1 Edge) (Edge, error) {
	if e0.isZero() {
		return e1, nil
	}
	if e1.isZero() {
		return e0, nil
	}
	if e0.Dest == e1.Dest {
		w, err := e.ct.Add(e0.Weight, e1.Weight)
		if err != nil {
			return Edge{}, err
		}
		return Edge{Dest: e0.Dest, Weight: w}, nil
	}
	key := newAddKey(kind, e0, e1)
	if res, ok := c.add[key]; ok {
		c.addHit++
		e.nt.logger.Debug().Msg("edge add cache hit")
		return res, nil
	}
	c.addMiss++
	e.nt.logger.Debug().Msg("edge add cache miss")

	n0, err := e.nt.NodeOf(e0.Dest)
	if err != nil {
		return Edge{}, err
	}
	n1, err := e.nt.NodeOf(e1.Dest)
	if err != nil {
		return Edge{}, err
	}
	level := n0.Variable
	if n1.Variable < level {
		level = n1.Variable
	}

	arity := kind.arity()
	var out [4]Edge
	for q := 0; q < arity; q++ {
		c0, err := e.childAt(e0, level, q, arity)
		if err != nil {
			return Edge{}, err
		}
		c1, err := e.childAt(e1, level, q, arity)
		if err != nil {
			return Edge{}, err
		}
		sum, err := e.Add(c, kind, c0, c1)
		if err != nil {
			return Edge{}, err
		}
		out[q] = sum
	}
	res, err := e.Make(kind, level, out)
	if err != nil {
		return Edge{}, err
	}
	c.add[key] = res
	return res, nil
}

// Multiply computes left * right, where left is a matrix edge and right
// is either a matrix edge (matrix x matrix) or a vector edge (matrix x
// vector); rightKind picks which. Results have rightKind's rank.
func (e *Engine) Multiply(c *Caches, left, right Edge, rightKind Kind) (Edge, error) {
	if left.isZero() || right.isZero() {
		return zeroEdge(), nil
	}
	if left.Dest == Terminal {
		w, err := e.ct.Mul(left.Weight, right.Weight)
		if err != nil {
			return Edge{}, err
		}
		return Edge{Dest: right.Dest, Weight: w}, nil
	}

	key := mulKey{rightKind: rightKind, leftDest: left.Dest, rightDest: right.Dest, leftW: left.Weight, rightW: right.Weight}
	cache := c.mulMat
	if rightKind == Vector {
		cache = c.mulVec
	}
	if res, ok := cache[key]; ok {
		c.mulHit++
		e.nt.logger.Debug().Msg("multiply cache hit")
		return res, nil
	}
	c.mulMiss++
	e.nt.logger.Debug().Msg("multiply cache miss")

	ln, err := e.nt.NodeOf(left.Dest)
	if err != nil {
		return Edge{}, err
	}
	level := ln.Variable
	if right.Dest != Terminal {
		rn, err := e.nt.NodeOf(right.Dest)
		if err != nil {
			return Edge{}, err
		}
		if rn.Variable < level {
			level = rn.Variable
		}
	}

	var out [4]Edge
	var err2 error
	if rightKind == Vector {
		out, err2 = e.multiplyVector(c, left, right, level)
	} else {
		out, err2 = e.multiplyMatrix(c, left, right, level)
	}
	if err2 != nil {
		return Edge{}, err2
	}

	res, err := e.Make(rightKind, level, out)
	if err != nil {
		return Edge{}, err
	}
	cache[key] = res
	return res, nil
}

func (e *Engine) multiplyVector(c *Caches, left, right Edge, level int32) ([4]Edge, error) {
	var out [4]Edge
	for i := 0; i < 2; i++ {
		var sum Edge
		for j := 0; j < 2; j++ {
			lc, err := e.childAt(left, level, 2*i+j, 4)
			if err != nil {
				return out, err
			}
			rc, err := e.childAt(right, level, j, 2)
			if err != nil {
				return out, err
			}
			prod, err := e.Multiply(c, lc, rc, Vector)
			if err != nil {
				return out, err
			}
			sum, err = e.Add(c, Vector, sum, prod)
			if err != nil {
				return out, err
			}
		}
		out[i] = sum
	}
	return out, nil
}

func (e *Engine) multiplyMatrix(c *Caches, left, right Edge, level int32) ([4]Edge, error) {
	var out [4]Edge
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum Edge
			for k := 0; k < 2; k++ {
				lc, err := e.childAt(left, level, 2*i+k, 4)
				if err != nil {
					return out, err
				}
				rc, err := e.childAt(right, level, 2*k+j, 4)
				if err != nil {
					return out, err
				}
				prod, err := e.Multiply(c, lc, rc, Matrix)
				if err != nil {
					return out, err
				}
				sum, err = e.Add(c, Matrix, sum, prod)
				if err != nil {
					return out, err
				}
			}
			out[2*i+j] = sum
		}
	}
	return out, nil
}

// Scale returns edge with its weight multiplied by factor.
func (e *Engine) Scale(factor ComplexID, edge Edge) (Edge, error) {
	if factor == ZERO || edge.isZero() {
		return zeroEdge(), nil
	}
	w, err := e.ct.Mul(factor, edge.Weight)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Dest: edge.Dest, Weight: w}, nil
}
