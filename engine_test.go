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

func newTestEngine(qubits int, rule NormalizationRule) (*Engine, *ComplexTable, *NodeTable) {
	ct := newTestComplexTable()
	nt := NewNodeTable(qubits, ct, 16, zerolog.Nop())
	return NewEngine(ct, nt, rule), ct, nt
}

func TestEngineGroundState(t *testing.T) {
	e, _, nt := newTestEngine(3, RuleFirstNonzero)
	ground, err := e.GroundState(3)
	require.NoError(t, err)
	assert.Equal(t, ONE, ground.Weight)

	node, err := nt.NodeOf(ground.Dest)
	require.NoError(t, err)
	assert.EqualValues(t, 0, node.Variable)
	assert.True(t, node.Edges[1].isZero())
}

func TestEngineMakeZeroEdgeWhenAllZero(t *testing.T) {
	e, _, _ := newTestEngine(1, RuleFirstNonzero)
	edge, err := e.Make(Vector, 0, [4]Edge{zeroEdge(), zeroEdge()})
	require.NoError(t, err)
	assert.True(t, edge.isZero())
}

func TestEngineMakeCollapsesRedundantVectorNode(t *testing.T) {
	e, _, _ := newTestEngine(1, RuleFirstNonzero)
	child := Edge{Dest: Terminal, Weight: ONE}
	edge, err := e.Make(Vector, 0, [4]Edge{child, child})
	require.NoError(t, err)
	// Both children identical (and already normalized to weight 1): the
	// node collapses and the parent edge just carries the shared weight.
	assert.Equal(t, Terminal, edge.Dest)
	assert.Equal(t, ONE, edge.Weight)
}

func TestEngineMakeCollapsesRedundantMatrixNode(t *testing.T) {
	e, _, _ := newTestEngine(1, RuleFirstNonzero)
	diag := Edge{Dest: Terminal, Weight: ONE}
	edge, err := e.Make(Matrix, 0, [4]Edge{diag, zeroEdge(), zeroEdge(), diag})
	require.NoError(t, err)
	assert.Equal(t, Terminal, edge.Dest)
	assert.Equal(t, ONE, edge.Weight)
}

func TestEngineMakeNormalizesFirstNonzero(t *testing.T) {
	e, ct, nt := newTestEngine(1, RuleFirstNonzero)
	a := Edge{Dest: Terminal, Weight: HALFSQ2}
	b := Edge{Dest: Terminal, Weight: NEGHSQ2}
	edge, err := e.Make(Vector, 0, [4]Edge{a, b})
	require.NoError(t, err)
	assert.Equal(t, HALFSQ2, edge.Weight)

	node, err := nt.NodeOf(edge.Dest)
	require.NoError(t, err)
	assert.Equal(t, ONE, node.Edges[0].Weight)
	w, err := ct.Div(NEGHSQ2, HALFSQ2)
	require.NoError(t, err)
	assert.Equal(t, w, node.Edges[1].Weight)
}

func TestEngineMakeNormalizesLargestMagnitude(t *testing.T) {
	e, _, nt := newTestEngine(1, RuleLargestMagnitude)
	a := Edge{Dest: Terminal, Weight: HALFSQ2}
	b := Edge{Dest: Terminal, Weight: ONE}
	edge, err := e.Make(Vector, 0, [4]Edge{a, b})
	require.NoError(t, err)
	assert.Equal(t, ONE, edge.Weight)
	node, err := nt.NodeOf(edge.Dest)
	require.NoError(t, err)
	assert.Equal(t, ONE, node.Edges[1].Weight)
}

func TestEngineChildAtSkippedLevel(t *testing.T) {
	e, _, nt := newTestEngine(3, RuleFirstNonzero)
	// A matrix operand whose root variable is 1 is queried at level 0:
	// diagonal quadrants should inherit the edge unchanged, off-diagonal
	// quadrants must be zero.
	leaf, err := nt.intern(Matrix, 1, [4]Edge{
		{Dest: Terminal, Weight: ONE}, zeroEdge(), zeroEdge(), {Dest: Terminal, Weight: ONE},
	})
	require.NoError(t, err)
	edge := Edge{Dest: leaf, Weight: ONE}

	diag, err := e.childAt(edge, 0, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, edge, diag)

	off, err := e.childAt(edge, 0, 1, 4)
	require.NoError(t, err)
	assert.True(t, off.isZero())
}
