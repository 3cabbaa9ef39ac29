// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongSimulatorRejectsZeroAndTerminalEdges(t *testing.T) {
	ct := newTestComplexTable()
	nt := NewNodeTable(1, ct, 4, zerolog.Nop())

	_, err := NewStrongSimulator(ct, nt, 1, 4, zeroEdge())
	assert.ErrorIs(t, err, ErrZeroEdge)

	_, err = NewStrongSimulator(ct, nt, 1, 4, Edge{Dest: Terminal, Weight: ONE})
	assert.ErrorIs(t, err, ErrTerminalEdge)
}

func TestStrongSimulatorRejectsOutOfRangeDecimals(t *testing.T) {
	e, ct, nt := newTestEngine(1, RuleFirstNonzero)
	ground, err := e.GroundState(1)
	require.NoError(t, err)
	_, err = NewStrongSimulator(ct, nt, 1, 11, ground)
	assert.ErrorIs(t, err, ErrInvalidPrecision)
}

// TestStrongSimulatorOrderingMatchesScenario3 exercises the n=2 circuit
// H(0); CX(0,1); H(0) from |00>, whose DFS order groups by qubit 0's
// value first (decided shallowest), then by qubit 1's: 00, 10, 01, 11.
func TestStrongSimulatorOrderingMatchesScenario3(t *testing.T) {
	e, ct, nt := newTestEngine(2, RuleFirstNonzero)
	c := NewCaches(16)
	ground, err := e.GroundState(2)
	require.NoError(t, err)
	circ := Circuit{
		Gate(0, GateH),
		Gate(1, GateX, Control{Qubit: 0, Bit: true}),
		Gate(0, GateH),
	}
	out, err := e.Compile(c, 2, ground, circ)
	require.NoError(t, err)

	strong, err := NewStrongSimulator(ct, nt, 2, 4, out)
	require.NoError(t, err)
	amps, err := All(strong)
	require.NoError(t, err)
	require.Len(t, amps, 4)
	states := make([]string, len(amps))
	for i, a := range amps {
		states[i] = a.State
	}
	assert.Equal(t, []string{"00", "10", "01", "11"}, states)
}

func TestStrongSimulatorHandlesSkippedVariables(t *testing.T) {
	// Build, by hand, a 3-qubit vector whose root (variable 0) routes
	// straight to a node at variable 2, skipping variable 1 entirely:
	// the DFS must enumerate both values of the missing qubit.
	e, ct, nt := newTestEngine(3, RuleFirstNonzero)
	leaf, err := e.Make(Vector, 2, [4]Edge{{Dest: Terminal, Weight: ONE}, zeroEdge()})
	require.NoError(t, err)
	root, err := e.Make(Vector, 0, [4]Edge{leaf, zeroEdge()})
	require.NoError(t, err)

	strong, err := NewStrongSimulator(ct, nt, 3, 4, root)
	require.NoError(t, err)
	amps, err := All(strong)
	require.NoError(t, err)
	require.Len(t, amps, 2)
	states := map[string]bool{}
	for _, a := range amps {
		states[a.State] = true
	}
	assert.True(t, states["000"])
	assert.True(t, states["010"])
}
