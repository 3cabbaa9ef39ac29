// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "github.com/google/uuid"

// Session is a self-contained simulation: one ComplexTable, one
// NodeTable, the Engine that factors nodes for both, and the op caches
// Add/Multiply share. Sessions are independent — nothing leaks across
// session boundaries — and everything inside one is addressed through
// NodeID/ComplexID rather than pointers, so Reset can void every table
// without leaving dangling references anywhere in client code.
type Session struct {
	id     uuid.UUID
	qubits int
	cfg    *configs

	ct     *ComplexTable
	nt     *NodeTable
	engine *Engine
	caches *Caches

	ground Edge
}

// New builds a Session for the given number of qubits, applying opts in
// order, and initializes it with the |0...0> ground state. Fails with
// ErrInvalidQubitCount if qubits is not positive.
func New(qubits int, opts ...Option) (*Session, error) {
	if qubits <= 0 {
		return nil, ErrInvalidQubitCount
	}
	cfg := makeconfigs(qubits)
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.seeded {
		_, seed := NewRng(0, false)
		cfg.seed, cfg.seeded = seed, true
	}

	s := &Session{id: uuid.New(), qubits: qubits, cfg: cfg}
	s.rebuild()

	ground, err := s.engine.GroundState(qubits)
	if err != nil {
		return nil, err
	}
	s.ground = ground
	return s, nil
}

func (s *Session) rebuild() {
	s.ct = NewComplexTable(s.cfg.complexsize, s.cfg.logger)
	s.nt = NewNodeTable(s.qubits, s.ct, s.cfg.nodesize, s.cfg.logger)
	s.engine = NewEngine(s.ct, s.nt, s.cfg.rule)
	s.caches = NewCaches(s.cfg.cachesize)
}

// ID returns the session's unique identifier, suitable for correlating
// log lines or DOT exports with a particular run.
func (s *Session) ID() uuid.UUID { return s.id }

// Qubits returns the number of qubits this session was built for.
func (s *Session) Qubits() int { return s.qubits }

// Seed returns the seed in effect for the weak simulator, whether it was
// supplied via the Seed option or derived at construction time.
func (s *Session) Seed() int64 { return s.cfg.seed }

// GroundState returns the |0...0> vector edge.
func (s *Session) GroundState() Edge { return s.ground }

// Reset voids every table (ComplexTable, NodeTable, op caches) and
// rebuilds the ground state, per §3's lifecycle: "tests MUST be able to
// reset tables." The session keeps its id, qubit count, and options.
func (s *Session) Reset() error {
	s.cfg.logger.Debug().Str("session", s.id.String()).Msg("reset")
	s.rebuild()
	ground, err := s.engine.GroundState(s.qubits)
	if err != nil {
		return err
	}
	s.ground = ground
	return nil
}

// InitialState builds the vector edge for a length-n initial-state string
// (see §6), without mutating the session's own ground-state edge.
func (s *Session) InitialState(spec string) (Edge, error) {
	return s.engine.InitialState(s.caches, s.qubits, spec)
}

// InitialStateFromInteger builds the vector edge for computational basis
// state k.
func (s *Session) InitialStateFromInteger(k uint64) (Edge, error) {
	return s.engine.InitialStateFromInteger(s.qubits, k)
}

// Run compiles circ starting from start and returns the resulting vector
// edge.
func (s *Session) Run(start Edge, circ Circuit) (Edge, error) {
	return s.engine.Compile(s.caches, s.qubits, start, circ)
}

// Strong builds a strong simulator over root.
func (s *Session) Strong(root Edge) (*StrongSimulator, error) {
	return NewStrongSimulator(s.ct, s.nt, s.qubits, s.cfg.decimals, root)
}

// Weak builds a weak simulator over root. It returns no random source;
// use Rng for one seeded from the session's configured (or derived) seed.
func (s *Session) Weak(root Edge) (*WeakSimulator, error) {
	return NewWeakSimulator(s.ct, s.nt, s.qubits, s.cfg.decimals, root)
}

// Rng returns a pseudorandom source seeded from the session's configured
// (or derived) seed, for use with Weak.
func (s *Session) Rng() Rng {
	r, _ := NewRng(s.cfg.seed, true)
	return r
}

// Stats reports the current size of the session's shared tables, per
// §5's "shared resources" accounting.
type Stats struct {
	Nodes      int
	Complexes  int
	NodeHits   int64
	NodeMisses int64
	AddHits    int64
	AddMisses  int64
	MulHits    int64
	MulMisses  int64
}

// Stats snapshots table and cache occupancy.
func (s *Session) Stats() Stats {
	return Stats{
		Nodes:      s.nt.Size(),
		Complexes:  len(s.ct.values),
		NodeHits:   s.nt.hit,
		NodeMisses: s.nt.miss,
		AddHits:    s.caches.addHit,
		AddMisses:  s.caches.addMiss,
		MulHits:    s.caches.mulHit,
		MulMisses:  s.caches.mulMiss,
	}
}
