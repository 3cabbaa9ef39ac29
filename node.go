// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "github.com/rs/zerolog"

// NodeID addresses a node in a NodeTable's arena. NodeID 0 is always the
// terminal: a node with no outgoing edges and variable equal to the
// session's qubit count (one past the last real qubit), so that "depth of
// terminal > depth of any real node" holds without a special case.
type NodeID int32

// Terminal is the NodeID of the unique terminal node of every session.
const Terminal NodeID = 0

// Kind distinguishes vector nodes (two outgoing edges, amplitude-for-|0>
// and amplitude-for-|1>) from matrix nodes (four outgoing edges, the
// row-major quadrants [00, 01, 10, 11]).
type Kind uint8

const (
	// Vector nodes have Kind's zero value so a zeroed Node defaults to the
	// more restrictive, easier-to-misuse-safely shape.
	Vector Kind = iota
	Matrix
)

// arity returns the number of outgoing edges a node of this kind carries.
func (k Kind) arity() int {
	if k == Matrix {
		return 4
	}
	return 2
}

// Edge is a pair of a destination node and a weight, the unit of sharing
// between QMDD nodes. The zero Edge is the zero edge (Terminal, ZERO).
type Edge struct {
	Dest   NodeID
	Weight ComplexID
}

func zeroEdge() Edge { return Edge{Dest: Terminal, Weight: ZERO} }

func (e Edge) isZero() bool { return e.Weight == ZERO }

// Node is a QMDD node: a variable (qubit index it decides on) plus its
// outgoing edges, and — for use by the weak simulator only — a selection
// probability computed once, on insertion, as the sum over outgoing edges
// of child.Prob · |edge.Weight|².
type Node struct {
	Variable int32
	Kind     Kind
	Edges    [4]Edge // only Edges[:Kind.arity()] are meaningful
	Prob     float64
}

// nodeKey is the canonical unique-table key: (kind, variable, edges...).
// Edge is itself comparable, so the whole key is usable directly as a Go
// map key, the same hash-consing discipline as the map-based node table
// of this engine's BDD ancestor (see DESIGN.md).
type nodeKey struct {
	kind     Kind
	variable int32
	edges    [4]Edge
}

// NodeTable is the unique table mapping a canonical (variable,
// outgoing-edge signature) to a single interned Node: hash-consing for
// QMDD nodes. It is an append-only arena for the life of a session.
type NodeTable struct {
	ct     *ComplexTable
	nodes  []Node
	unique map[nodeKey]NodeID

	hit, miss int64
	logger    zerolog.Logger
}

// NewNodeTable builds a NodeTable for a session with the given number of
// qubits, preallocated to hold about capacity nodes.
func NewNodeTable(qubits int, ct *ComplexTable, capacity int, logger zerolog.Logger) *NodeTable {
	if capacity < 1 {
		capacity = 1
	}
	nt := &NodeTable{
		ct:     ct,
		nodes:  make([]Node, 0, capacity),
		unique: make(map[nodeKey]NodeID, capacity),
		logger: logger,
	}
	nt.nodes = append(nt.nodes, Node{Variable: int32(qubits), Prob: 1.0})
	return nt
}

// Reset voids the table, keeping only the terminal, for the given number
// of qubits.
func (nt *NodeTable) Reset(qubits int) {
	nt.nodes = nt.nodes[:0]
	nt.unique = make(map[nodeKey]NodeID, cap(nt.nodes))
	nt.hit, nt.miss = 0, 0
	nt.nodes = append(nt.nodes, Node{Variable: int32(qubits), Prob: 1.0})
	nt.logger.Debug().Int("qubits", qubits).Msg("node table reset")
}

// NodeOf returns the interned Node for id.
func (nt *NodeTable) NodeOf(id NodeID) (Node, error) {
	if id < 0 || int(id) >= len(nt.nodes) {
		return Node{}, ErrInvalidIndex
	}
	return nt.nodes[id], nil
}

// Size returns the number of interned nodes, including the terminal.
func (nt *NodeTable) Size() int { return len(nt.nodes) }

func (nt *NodeTable) probOf(id NodeID) float64 {
	return nt.nodes[id].Prob
}

// intern returns the existing node matching (kind, variable, edges) or
// allocates a fresh one. Callers are expected to have already normalized
// and collapsed edges via the node factory in engine.go — intern performs
// no normalization of its own, only hash-consing.
func (nt *NodeTable) intern(kind Kind, variable int32, edges [4]Edge) (NodeID, error) {
	key := nodeKey{kind: kind, variable: variable, edges: edges}
	// zero out the slots unused by this kind's arity so two nodes that
	// differ only in garbage beyond their arity never fail to share.
	for i := kind.arity(); i < 4; i++ {
		key.edges[i] = Edge{}
	}
	if id, ok := nt.unique[key]; ok {
		nt.hit++
		nt.logger.Debug().Int32("id", int32(id)).Msg("node table hit")
		return id, nil
	}
	nt.miss++
	prob := 0.0
	for i := 0; i < kind.arity(); i++ {
		e := edges[i]
		if e.isZero() {
			continue
		}
		if int(e.Dest) >= len(nt.nodes) {
			return 0, ErrInvalidIndex
		}
		m, err := nt.ct.Mag2(e.Weight)
		if err != nil {
			return 0, err
		}
		prob += nt.probOf(e.Dest) * m
	}
	id := NodeID(len(nt.nodes))
	nt.nodes = append(nt.nodes, Node{Variable: variable, Kind: kind, Edges: key.edges, Prob: prob})
	nt.unique[key] = id
	nt.logger.Debug().Int32("id", int32(id)).Int32("variable", variable).Msg("node table miss")
	return id, nil
}
