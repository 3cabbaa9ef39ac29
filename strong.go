// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Amplitude is one nonzero basis-state amplitude yielded by strong
// simulation: state is a length-n binary string with qubit 0 as the
// rightmost character, re and im are rounded to the session's configured
// decimals.
type Amplitude struct {
	State string
	Re    float64
	Im    float64
}

// strongFrame is one explicit-stack entry of the strong simulator's DFS:
// the node to resume from, the amplitude accumulated on the path leading
// to it, and the bits decided so far along that path. Those are the
// low-order qubits 0..len(partial)-1, so partial is the right-hand end of
// the final state string, with the highest decided qubit on its left.
type strongFrame struct {
	dest    NodeID
	weight  ComplexID
	partial string
}

// StrongSimulator is a lazy, resumable preorder DFS over a vector QMDD,
// yielding one nonzero amplitude per call to Next. It holds an explicit
// stack rather than recursing so that deep circuits (many qubits) don't
// consume Go's call stack, per §4.4.
type StrongSimulator struct {
	ct       *ComplexTable
	nt       *NodeTable
	qubits   int
	decimals int
	stack    []strongFrame
}

// NewStrongSimulator builds a strong simulator over root, failing with
// ErrZeroEdge if root is the zero edge or ErrTerminalEdge if root already
// points at the terminal (there is no qubit left to branch on).
func NewStrongSimulator(ct *ComplexTable, nt *NodeTable, qubits int, decimals int, root Edge) (*StrongSimulator, error) {
	if decimals < 0 || decimals > 10 {
		return nil, ErrInvalidPrecision
	}
	if root.isZero() {
		return nil, ErrZeroEdge
	}
	if root.Dest == Terminal {
		return nil, ErrTerminalEdge
	}
	s := &StrongSimulator{ct: ct, nt: nt, qubits: qubits, decimals: decimals}
	s.stack = append(s.stack, strongFrame{dest: root.Dest, weight: root.Weight, partial: ""})
	return s, nil
}

// Done reports whether the DFS stack is empty: no more amplitudes remain.
func (s *StrongSimulator) Done() bool { return len(s.stack) == 0 }

// Next pops and expands stack entries until it can yield a complete
// basis-state amplitude, or returns ok=false once the DFS is exhausted.
// Pushing the right (bit=1) child before the left (bit=0) child means the
// stack — last in, first out — explores bit=0 first at every node, giving
// a stable preorder that varies qubit 0 (the rightmost character) slowest:
// for two qubits, 00, 10, 01, 11.
func (s *StrongSimulator) Next() (Amplitude, bool, error) {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		node, err := s.nt.NodeOf(top.dest)
		if err != nil {
			return Amplitude{}, false, err
		}

		gap := s.expandGap(top, node.Variable)
		if gap != nil {
			s.stack = append(s.stack, gap...)
			continue
		}

		if top.dest == Terminal {
			amp, err := s.yield(top)
			if err != nil {
				return Amplitude{}, false, err
			}
			return amp, true, nil
		}

		for bit := 1; bit >= 0; bit-- {
			child := node.Edges[bit]
			if child.isZero() {
				continue
			}
			w, err := s.ct.Mul(top.weight, child.Weight)
			if err != nil {
				return Amplitude{}, false, err
			}
			prefix := "0"
			if bit == 1 {
				prefix = "1"
			}
			s.stack = append(s.stack, strongFrame{
				dest:    child.Dest,
				weight:  w,
				partial: prefix + top.partial,
			})
		}
	}
	return Amplitude{}, false, nil
}

// expandGap handles the case where the node at the top of the stack skips
// one or more qubits before reaching variable: every missing bit
// combination must be enumerated, since a skipped qubit's amplitude
// doesn't depend on that qubit's value but a basis-state string still
// needs a character for every qubit. Returns nil if there's no gap (the
// number of decided bits, len(partial), which is the index of the next
// undecided qubit, already equals the node's variable).
func (s *StrongSimulator) expandGap(frame strongFrame, variable int32) []strongFrame {
	decided := len(frame.partial)
	gapSize := int(variable) - decided
	if gapSize <= 0 {
		return nil
	}
	out := make([]strongFrame, 0, 1<<uint(gapSize))
	for bits := (1 << uint(gapSize)) - 1; bits >= 0; bits-- {
		suffix := make([]byte, gapSize)
		for i := 0; i < gapSize; i++ {
			if bits&(1<<uint(gapSize-1-i)) != 0 {
				suffix[i] = '1'
			} else {
				suffix[i] = '0'
			}
		}
		out = append(out, strongFrame{
			dest:    frame.dest,
			weight:  frame.weight,
			partial: string(suffix) + frame.partial,
		})
	}
	return out
}

func (s *StrongSimulator) yield(frame strongFrame) (Amplitude, error) {
	re, err := s.ct.Re(frame.weight)
	if err != nil {
		return Amplitude{}, err
	}
	im, err := s.ct.Im(frame.weight)
	if err != nil {
		return Amplitude{}, err
	}
	re = round(re, s.decimals)
	im = round(im, s.decimals)
	state := frame.partial
	for len(state) < s.qubits {
		state = "0" + state
	}
	return Amplitude{State: state, Re: re, Im: im}, nil
}

// All drains a StrongSimulator into a slice, for callers that don't need
// the lazy interface.
func All(s *StrongSimulator) ([]Amplitude, error) {
	var out []Amplitude
	for {
		amp, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, amp)
	}
	return out, nil
}
