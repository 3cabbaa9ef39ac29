// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyAndRead builds step as a controlled gate, applies it to a
// computational basis state given as an integer, and returns the
// resulting nonzero (state, re, im) triples.
func applyAndRead(t *testing.T, qubits int, k uint64, gate MatrixEntries, target int, controls ...Control) []Amplitude {
	t.Helper()
	e, ct, nt := newTestEngine(qubits, RuleFirstNonzero)
	c := NewCaches(16)
	start, err := e.InitialStateFromInteger(qubits, k)
	require.NoError(t, err)
	step, err := e.ControlledGate(c, gate, target, controls)
	require.NoError(t, err)
	out, err := e.Multiply(c, step, start, Vector)
	require.NoError(t, err)
	strong, err := NewStrongSimulator(ct, nt, qubits, 6, out)
	require.NoError(t, err)
	amps, err := All(strong)
	require.NoError(t, err)
	return amps
}

// TestGateCNOTControlBelowTarget reproduces the classic CNOT with the
// control deeper than the target (control qubit 1, target qubit 0): on
// |10> (qubit1=1, qubit0=0) the target flips, giving |11>.
func TestGateCNOTControlBelowTarget(t *testing.T) {
	amps := applyAndRead(t, 2, 0b10, GateX, 0, Control{Qubit: 1, Bit: true})
	require.Len(t, amps, 1)
	assert.Equal(t, "11", amps[0].State)
	assert.InDelta(t, 1.0, amps[0].Re, 1e-9)
}

// TestGateCNOTControlBelowTargetInactive checks the control-inactive case
// of the same construction leaves the state untouched.
func TestGateCNOTControlBelowTargetInactive(t *testing.T) {
	amps := applyAndRead(t, 2, 0b00, GateX, 0, Control{Qubit: 1, Bit: true})
	require.Len(t, amps, 1)
	assert.Equal(t, "00", amps[0].State)
}

// TestGateCNOTControlAboveTarget places the control shallower than the
// target (control qubit 0, target qubit 1): on |01> the target flips,
// giving |11>.
func TestGateCNOTControlAboveTarget(t *testing.T) {
	amps := applyAndRead(t, 2, 0b01, GateX, 1, Control{Qubit: 0, Bit: true})
	require.Len(t, amps, 1)
	assert.Equal(t, "11", amps[0].State)
}

func TestGateCNOTControlAboveTargetInactive(t *testing.T) {
	amps := applyAndRead(t, 2, 0b00, GateX, 1, Control{Qubit: 0, Bit: true})
	require.Len(t, amps, 1)
	assert.Equal(t, "00", amps[0].State)
}

// TestGateMCXThreeControls exercises scenario 4 of the testable
// properties: n=5, MCX({0,1,2}->3) with controls active on |0>
// (activation "000"), from initial state "10000", giving |11000>.
func TestGateMCXThreeControls(t *testing.T) {
	e, ct, nt := newTestEngine(5, RuleFirstNonzero)
	c := NewCaches(64)
	start, err := e.InitialState(c, 5, "10000")
	require.NoError(t, err)
	step, err := e.ControlledGate(c, GateX, 3,
		[]Control{{Qubit: 0, Bit: false}, {Qubit: 1, Bit: false}, {Qubit: 2, Bit: false}})
	require.NoError(t, err)
	out, err := e.Multiply(c, step, start, Vector)
	require.NoError(t, err)
	strong, err := NewStrongSimulator(ct, nt, 5, 6, out)
	require.NoError(t, err)
	amps, err := All(strong)
	require.NoError(t, err)
	require.Len(t, amps, 1)
	assert.Equal(t, "11000", amps[0].State)
	assert.InDelta(t, 1.0, amps[0].Re, 1e-9)
}

func TestGateControlledGateDuplicateQubit(t *testing.T) {
	e, _, _ := newTestEngine(2, RuleFirstNonzero)
	c := NewCaches(4)
	_, err := e.ControlledGate(c, GateX, 0, []Control{{Qubit: 0, Bit: true}})
	assert.ErrorIs(t, err, ErrDuplicateQubit)
}

func TestGateCatalogTAndTdagAreExact(t *testing.T) {
	ct := newTestComplexTable()
	one, err := ct.Mul(GateT[3], GateTdag[3])
	require.NoError(t, err)
	assert.Equal(t, ONE, one)
}

func TestGateParallelLayer(t *testing.T) {
	e, ct, nt := newTestEngine(3, RuleFirstNonzero)
	ground, err := e.GroundState(3)
	require.NoError(t, err)
	layer, err := e.ParallelLayer(3, map[int]MatrixEntries{0: GateX, 1: GateH})
	require.NoError(t, err)
	out, err := e.Multiply(NewCaches(16), layer, ground, Vector)
	require.NoError(t, err)
	strong, err := NewStrongSimulator(ct, nt, 3, 6, out)
	require.NoError(t, err)
	amps, err := All(strong)
	require.NoError(t, err)
	require.Len(t, amps, 2)
	states := map[string]bool{amps[0].State: true, amps[1].State: true}
	assert.True(t, states["001"])
	assert.True(t, states["011"])
}
