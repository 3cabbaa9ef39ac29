// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "sort"

// MatrixEntries is a gate's external contract: a flat 4-entry array
// [m00, m01, m10, m11] of complex indices, in row-major order, per §6.
// The compiler interacts with gates only through this shape; the names
// and method surface of a user-facing circuit-building API (x, cx, swap,
// ...) are deliberately out of scope for this package.
type MatrixEntries [4]ComplexID

// Control is one control of a controlled gate: a qubit index and the bit
// it must carry for the gate to activate.
type Control struct {
	Qubit int
	Bit   bool
}

// Activator returns the matrix-quadrant index (3 for a |1>-control, 0 for
// a |0>-control) that should route into the controlled structure.
func (ctl Control) Activator() int {
	if ctl.Bit {
		return 3
	}
	return 0
}

// Antiactivator returns the complement of Activator.
func (ctl Control) Antiactivator() int {
	if ctl.Bit {
		return 0
	}
	return 3
}

// Built-in single-qubit gate matrices. T and its dagger rely on the fact
// that e^{±iπ/4} = (1±i)/√2 is exactly representable in ℚ(√2, i), so
// nothing here ever needs floating point.
var (
	GateI    = MatrixEntries{ONE, ZERO, ZERO, ONE}
	GateX    = MatrixEntries{ZERO, ONE, ONE, ZERO}
	GateY    = MatrixEntries{ZERO, NEGIMAG, IMAG, ZERO}
	GateZ    = MatrixEntries{ONE, ZERO, ZERO, NEGONE}
	GateH    = MatrixEntries{HALFSQ2, HALFSQ2, HALFSQ2, NEGHSQ2}
	GateS    = MatrixEntries{ONE, ZERO, ZERO, IMAG}
	GateSdag = MatrixEntries{ONE, ZERO, ZERO, NEGIMAG}
	GateT    = MatrixEntries{ONE, ZERO, ZERO, PLUSI}
	GateTdag = MatrixEntries{ONE, ZERO, ZERO, MINUSI}
)

// sortControlsDesc sorts a copy of controls by qubit index, deepest first,
// which is the bottom-up order the controlled-gate construction below
// builds each chain in: below-target controls from the deepest one up
// towards the target, above-target controls outward from the one closest
// to the target.
func sortControlsDesc(controls []Control) []Control {
	out := make([]Control, len(controls))
	copy(out, controls)
	sort.Slice(out, func(i, j int) bool { return out[i].Qubit > out[j].Qubit })
	return out
}

// ControlledGate builds the matrix QMDD for a 2x2 gate applied to target,
// guarded by zero or more controls on either side of it, per §4.3.
//
// Controls deeper than the target ("below") cannot simply wrap the
// target's node as a parent — a node's variable must be smaller than any
// of its children's, and a below-target control has a *larger* variable.
// Instead each of the target's four quadrants is built as
// Identity + (gate[idx]-δ_diag)·AllActive, where AllActive is the matrix
// QMDD asserting that every below-target control is active (a pure
// projector chain) and δ_diag is 1 on the diagonal (0,3) and 0 off it:
// when every below-target control is active, quadrant idx reduces to
// gate[idx]; otherwise it reduces to the identity's own entry (1 on the
// diagonal, 0 off it). Controls shallower than the target ("above") wrap
// the resulting root as ordinary parents, since their variable is indeed
// smaller.
func (e *Engine) ControlledGate(c *Caches, gate MatrixEntries, target int, controls []Control) (Edge, error) {
	var below, above []Control
	for _, ctl := range controls {
		switch {
		case ctl.Qubit > target:
			below = append(below, ctl)
		case ctl.Qubit < target:
			above = append(above, ctl)
		default:
			return Edge{}, ErrDuplicateQubit
		}
	}
	below = sortControlsDesc(below)
	above = sortControlsDesc(above)

	allActive := Edge{Dest: Terminal, Weight: ONE}
	for _, ctl := range below {
		var quad [4]Edge
		quad[ctl.Activator()] = allActive
		node, err := e.Make(Matrix, int32(ctl.Qubit), quad)
		if err != nil {
			return Edge{}, err
		}
		allActive = node
	}

	var tq [4]Edge
	if len(below) == 0 {
		for idx := 0; idx < 4; idx++ {
			tq[idx] = Edge{Dest: Terminal, Weight: gate[idx]}
		}
	} else {
		for i := 0; i < 2; i++ {
			diag := 3 * i // 0 or 3
			delta, err := e.ct.Add(gate[diag], NEGONE)
			if err != nil {
				return Edge{}, err
			}
			scaled, err := e.Scale(delta, allActive)
			if err != nil {
				return Edge{}, err
			}
			tq[diag], err = e.Add(c, Matrix, Edge{Dest: Terminal, Weight: ONE}, scaled)
			if err != nil {
				return Edge{}, err
			}
		}
		for _, off := range [2]int{1, 2} {
			scaled, err := e.Scale(gate[off], allActive)
			if err != nil {
				return Edge{}, err
			}
			tq[off] = scaled
		}
	}
	current, err := e.Make(Matrix, int32(target), tq)
	if err != nil {
		return Edge{}, err
	}

	for _, ctl := range above {
		var quad [4]Edge
		quad[ctl.Activator()] = current
		quad[ctl.Antiactivator()] = Edge{Dest: Terminal, Weight: ONE}
		node, err := e.Make(Matrix, int32(ctl.Qubit), quad)
		if err != nil {
			return Edge{}, err
		}
		current = node
	}
	return current, nil
}

// ParallelLayer builds, bottom-up, the matrix QMDD of an uncontrolled
// parallel step: a set of single-qubit gates applied to distinct qubits
// simultaneously, identity elsewhere. gates maps qubit index to its gate.
func (e *Engine) ParallelLayer(qubits int, gates map[int]MatrixEntries) (Edge, error) {
	current := Edge{Dest: Terminal, Weight: ONE}
	for v := qubits - 1; v >= 0; v-- {
		m, ok := gates[v]
		if !ok {
			m = GateI
		}
		var quad [4]Edge
		for idx := 0; idx < 4; idx++ {
			if m[idx] == ZERO {
				quad[idx] = zeroEdge()
				continue
			}
			w, err := e.ct.Mul(m[idx], current.Weight)
			if err != nil {
				return Edge{}, err
			}
			quad[idx] = Edge{Dest: current.Dest, Weight: w}
		}
		node, err := e.Make(Matrix, int32(v), quad)
		if err != nil {
			return Edge{}, err
		}
		current = node
	}
	return current, nil
}
