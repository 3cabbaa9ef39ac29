// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Operation is one circuit step: a single controlled gate, or — when Gates
// holds more than one entry — an uncontrolled parallel step applying a
// distinct single-qubit gate to each of several qubits simultaneously.
// The two shapes share a type so a Circuit is just []Operation, but the
// compiler never mixes them: an Operation with len(Controls) > 0 always
// has exactly one (Target, Gate) pair.
type Operation struct {
	Gates    map[int]MatrixEntries // target qubit -> gate; len==1 for a controlled step
	Controls []Control             // only meaningful when len(Gates)==1
}

// Gate builds a single, possibly controlled, operation.
func Gate(target int, gate MatrixEntries, controls ...Control) Operation {
	return Operation{Gates: map[int]MatrixEntries{target: gate}, Controls: controls}
}

// Layer builds an uncontrolled parallel step from a target->gate map.
func Layer(gates map[int]MatrixEntries) Operation {
	return Operation{Gates: gates}
}

// Circuit is an ordered list of operations, compiled left to right into a
// single matrix QMDD per step and multiplied into the running state.
type Circuit []Operation

// validateOperation checks shape constraints the compiler must reject
// before any table mutation happens, per §7: an operation with no gate,
// controls on a multi-gate step, out-of-range qubits, and duplicate qubits
// between targets and controls or among controls themselves. Gates always
// carry exactly four entries (MatrixEntries), so that needs no check.
func validateOperation(qubits int, op Operation) error {
	if len(op.Gates) == 0 {
		return ErrEmptyInput
	}
	if len(op.Controls) > 0 && len(op.Gates) != 1 {
		return ErrArityMismatch
	}
	seen := make(map[int]bool, len(op.Gates)+len(op.Controls))
	for q := range op.Gates {
		if q < 0 || q >= qubits {
			return ErrOutOfBoundsQubit
		}
		if seen[q] {
			return ErrDuplicateQubit
		}
		seen[q] = true
	}
	for _, ctl := range op.Controls {
		if ctl.Qubit < 0 || ctl.Qubit >= qubits {
			return ErrOutOfBoundsQubit
		}
		if seen[ctl.Qubit] {
			return ErrDuplicateQubit
		}
		seen[ctl.Qubit] = true
	}
	return nil
}

// Compile applies every operation of circ, in order, to start, returning
// the resulting vector edge. Validation of every operation happens before
// any operation is applied, so a rejected circuit never partially mutates
// the engine's tables (§7).
func (e *Engine) Compile(c *Caches, qubits int, start Edge, circ Circuit) (Edge, error) {
	for _, op := range circ {
		if err := validateOperation(qubits, op); err != nil {
			return Edge{}, err
		}
	}
	state := start
	for _, op := range circ {
		step, err := e.buildStep(c, qubits, op)
		if err != nil {
			return Edge{}, err
		}
		state, err = e.Multiply(c, step, state, Vector)
		if err != nil {
			return Edge{}, err
		}
	}
	return state, nil
}

func (e *Engine) buildStep(c *Caches, qubits int, op Operation) (Edge, error) {
	if len(op.Gates) == 1 {
		for target, gate := range op.Gates {
			return e.ControlledGate(c, gate, target, op.Controls)
		}
	}
	return e.ParallelLayer(qubits, op.Gates)
}

// initialStateGates maps one initial-state character to the gate sequence
// applied, left to right, to the qubit it addresses, per §6.
var initialStateGates = map[byte][]MatrixEntries{
	'0': {},
	'1': {GateX},
	'+': {GateH},
	'-': {GateX, GateH},
	'r': {GateH, GateS},
	'l': {GateX, GateH, GateS},
}

// InitialState builds the vector edge for a length-n string over the
// alphabet {'0','1','+','-','r','l'}, per §6: the first character
// addresses qubit n-1 (MSB), the last addresses qubit 0.
func (e *Engine) InitialState(c *Caches, qubits int, spec string) (Edge, error) {
	if len(spec) != qubits {
		return Edge{}, ErrInvalidInitialState
	}
	for i := 0; i < len(spec); i++ {
		if _, ok := initialStateGates[spec[i]]; !ok {
			return Edge{}, ErrInvalidInitialState
		}
	}
	state, err := e.GroundState(qubits)
	if err != nil {
		return Edge{}, err
	}
	for i, ch := range []byte(spec) {
		gates := initialStateGates[ch]
		qubit := qubits - 1 - i
		for _, gate := range gates {
			step, err := e.ControlledGate(c, gate, qubit, nil)
			if err != nil {
				return Edge{}, err
			}
			state, err = e.Multiply(c, step, state, Vector)
			if err != nil {
				return Edge{}, err
			}
		}
	}
	return state, nil
}

// InitialStateFromInteger builds the vector edge for the computational
// basis state k, left-padded to n bits (qubit n-1 is the MSB).
func (e *Engine) InitialStateFromInteger(qubits int, k uint64) (Edge, error) {
	if qubits <= 0 {
		return Edge{}, ErrInvalidQubitCount
	}
	if k>>uint(qubits) != 0 {
		return Edge{}, ErrInvalidInitialState
	}
	current := Edge{Dest: Terminal, Weight: ONE}
	for v := qubits - 1; v >= 0; v-- {
		bit := (k >> uint(v)) & 1
		var edges [4]Edge
		if bit == 0 {
			edges = [4]Edge{current, zeroEdge()}
		} else {
			edges = [4]Edge{zeroEdge(), current}
		}
		next, err := e.Make(Vector, int32(v), edges)
		if err != nil {
			return Edge{}, err
		}
		current = next
	}
	return current, nil
}
