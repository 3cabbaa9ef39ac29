// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Engine is the node factory: given a tentative variable and a set of
// candidate outgoing edges, it normalizes, detects redundancy, and interns
// the result via the session's NodeTable and ComplexTable. This is the
// single choke point every other operation (add, multiply, gate
// construction, ground state) goes through to build a node, which is what
// makes canonicity (§3 invariant 1) a property of the factory rather than
// something every caller has to maintain by hand.
type Engine struct {
	ct   *ComplexTable
	nt   *NodeTable
	rule NormalizationRule
}

// NewEngine builds an Engine sharing the given tables.
func NewEngine(ct *ComplexTable, nt *NodeTable, rule NormalizationRule) *Engine {
	return &Engine{ct: ct, nt: nt, rule: rule}
}

// normalize picks the common factor out of edges according to the active
// rule and divides every edge's weight by it, returning the factor and
// the rescaled edges. If every edge is zero, factor is ZERO.
func (e *Engine) normalize(edges [4]Edge, arity int) (ComplexID, [4]Edge, error) {
	weights := make([]ComplexID, arity)
	for i := 0; i < arity; i++ {
		weights[i] = edges[i].Weight
	}
	var factor ComplexID
	switch e.rule {
	case RuleLargestMagnitude:
		f, err := e.ct.ArgMax(weights)
		if err != nil {
			return 0, edges, err
		}
		factor = f
	default: // RuleFirstNonzero
		factor = ZERO
		for _, w := range weights {
			if w != ZERO {
				factor = w
				break
			}
		}
	}
	if factor == ZERO {
		return ZERO, edges, nil
	}
	var out [4]Edge
	for i := 0; i < arity; i++ {
		if edges[i].isZero() {
			out[i] = zeroEdge()
			continue
		}
		w, err := e.ct.Div(edges[i].Weight, factor)
		if err != nil {
			return 0, edges, err
		}
		out[i] = Edge{Dest: edges[i].Dest, Weight: w}
	}
	return factor, out, nil
}

// redundant reports whether the (already-normalized) edges collapse this
// node away entirely, returning the edge the node should be replaced by.
// A vector node collapses when both children share a destination and
// weight (§3 invariant 4). A matrix node collapses when its diagonal
// edges share a destination and weight and the off-diagonal edges are
// zero (§3 invariant 3). Both destination and weight are compared, so a
// diagonal such as (1, -1) with a shared destination is not collapsed.
func redundant(kind Kind, edges [4]Edge) (Edge, bool) {
	switch kind {
	case Vector:
		if edges[0] == edges[1] {
			return edges[0], true
		}
	case Matrix:
		if edges[1].isZero() && edges[2].isZero() && edges[0] == edges[3] {
			return edges[0], true
		}
	}
	return Edge{}, false
}

// Make is the node factory described in §4.3: normalize, short-circuit on
// an all-zero result, collapse redundant/identity nodes, and intern.
// It returns the edge that should replace whatever wanted to point at
// this (variable, edges) combination: (node, factor).
func (e *Engine) Make(kind Kind, variable int32, edges [4]Edge) (Edge, error) {
	arity := kind.arity()
	factor, normalized, err := e.normalize(edges, arity)
	if err != nil {
		return Edge{}, err
	}
	if factor == ZERO {
		return zeroEdge(), nil
	}
	if dest, ok := redundant(kind, normalized); ok {
		w, err := e.ct.Mul(factor, dest.Weight)
		if err != nil {
			return Edge{}, err
		}
		e.nt.logger.Debug().Int32("variable", variable).Msg("identity-branch collapse")
		return Edge{Dest: dest.Dest, Weight: w}, nil
	}
	id, err := e.nt.intern(kind, variable, normalized)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Dest: id, Weight: factor}, nil
}

// GroundState builds the |0...0> vector edge: a chain of vector nodes,
// one per qubit from n-1 up to 0, each routing the |0> branch to the
// previously-built child with weight ONE and the |1> branch to the
// terminal with weight ZERO.
func (e *Engine) GroundState(qubits int) (Edge, error) {
	current := Edge{Dest: Terminal, Weight: ONE}
	for v := qubits - 1; v >= 0; v-- {
		edges := [4]Edge{current, zeroEdge()}
		next, err := e.Make(Vector, int32(v), edges)
		if err != nil {
			return Edge{}, err
		}
		current = next
	}
	return current, nil
}

// childAt returns the edge an operand should contribute for quadrant q
// when recursing at level: if the operand's destination variable is
// strictly greater than level, the operand "skips" this level entirely
// and behaves as a scaled identity (diagonal quadrants inherit the edge,
// off-diagonal quadrants are zero); otherwise the operand's own child
// edge at q is returned, scaled by the edge's own weight.
func (e *Engine) childAt(edge Edge, level int32, q int, arity int) (Edge, error) {
	if edge.isZero() {
		return zeroEdge(), nil
	}
	node, err := e.nt.NodeOf(edge.Dest)
	if err != nil {
		return Edge{}, err
	}
	if node.Variable > level {
		// Scaled identity at this level: a vector operand that skips a
		// level contributes the same edge to both of its virtual slots
		// (the amplitude doesn't depend on this variable); a matrix
		// operand contributes it to the two diagonal quadrants only, and
		// zero to the off-diagonal ones.
		if arity == 2 || q == 0 || q == 3 {
			return edge, nil
		}
		return zeroEdge(), nil
	}
	child := node.Edges[q]
	if child.isZero() {
		return zeroEdge(), nil
	}
	w, err := e.ct.Mul(edge.Weight, child.Weight)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Dest: child.Dest, Weight: w}, nil
}
