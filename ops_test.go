// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsAddGroundStates(t *testing.T) {
	e, ct, _ := newTestEngine(2, RuleFirstNonzero)
	c := NewCaches(16)
	g, err := e.GroundState(2)
	require.NoError(t, err)

	sum, err := e.Add(c, Vector, g, g)
	require.NoError(t, err)
	re, err := ct.Re(sum.Weight)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, re, 1e-12)
}

func TestOpsAddZeroIsIdentity(t *testing.T) {
	e, _, _ := newTestEngine(2, RuleFirstNonzero)
	c := NewCaches(16)
	g, err := e.GroundState(2)
	require.NoError(t, err)
	sum, err := e.Add(c, Vector, g, zeroEdge())
	require.NoError(t, err)
	assert.Equal(t, g, sum)
}

func TestOpsMultiplyIdentityMatrixIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(2, RuleFirstNonzero)
	c := NewCaches(16)
	state, err := e.InitialState(c, 2, "01")
	require.NoError(t, err)

	identity, err := e.ControlledGate(c, GateI, 0, nil)
	require.NoError(t, err)
	out, err := e.Multiply(c, identity, state, Vector)
	require.NoError(t, err)
	assert.Equal(t, state, out)
}

func TestOpsMultiplyHAppliedTwiceIsIdentity(t *testing.T) {
	e, ct, _ := newTestEngine(1, RuleFirstNonzero)
	c := NewCaches(16)
	h, err := e.ControlledGate(c, GateH, 0, nil)
	require.NoError(t, err)

	hh, err := e.Multiply(c, h, h, Matrix)
	require.NoError(t, err)
	// H·H collapses to the identity, which the node factory elides
	// entirely, so hh should already be a direct edge to the terminal.
	assert.Equal(t, Terminal, hh.Dest)

	ground, err := e.GroundState(1)
	require.NoError(t, err)
	out, err := e.Multiply(c, hh, ground, Vector)
	require.NoError(t, err)
	assert.Equal(t, ground, out)

	re, err := ct.Re(hh.Weight)
	require.NoError(t, err)
	im, err := ct.Im(hh.Weight)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, re, 1e-12)
	assert.InDelta(t, 0.0, im, 1e-12)
}

func TestOpsScaleByZero(t *testing.T) {
	e, _, _ := newTestEngine(1, RuleFirstNonzero)
	ground, err := e.GroundState(1)
	require.NoError(t, err)
	scaled, err := e.Scale(ZERO, ground)
	require.NoError(t, err)
	assert.True(t, scaled.isZero())
}
