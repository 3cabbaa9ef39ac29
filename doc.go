// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package qmdd defines a concrete type for Quantum Multiple-Valued Decision
Diagrams (QMDD), a data structure used to represent complex-valued state
vectors and unitary matrices over a fixed number of qubits with aggressive
structural sharing.

Basics

Each Session has a fixed number of qubits, Qubits, declared when it is
initialized (using the method New) and each qubit is represented by an
(integer) index in the interval [0..Qubits), called a level, with larger
indices deeper in the graph. Sessions support the simulation of independent
circuits with possibly different numbers of qubits.

Most operations over a Session return an Edge: a pair of a Node address and
a weight drawn from an exact complex-number ring, represented internally as
a five-integer tuple. Nodes are addressed by a monotonically increasing
NodeID, with the convention that NodeID 0 is always the terminal node.

Hash-consing

Like its BDD ancestor, this library interns every node and every complex
value it ever builds into a unicity table keyed by canonical content, so
that two constructions of the same mathematical object always produce the
same NodeID or ComplexID. This is what makes the engine's caches useful:
equality of value is equality of index.

Automatic memory management

The library is written in pure Go. Nodes and complex values live in an
append-only arena for the life of a Session; there is no incremental
garbage collector, because a quantum-circuit simulation never needs to
reclaim a node mid-session — sessions are cheap to create and are dropped
wholesale. Session.Reset voids all tables and starts a fresh arena.
*/
package qmdd
