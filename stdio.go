// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// reachable collects, via BFS from root, the set of NodeIDs reachable
// from it (including the terminal if reached), the same "mark the
// visited subgraph" step the teacher's DOT/AUT exporters perform by
// setting a mark bit on each node — done here with a plain visited set
// instead, since a Node is never mutated after insertion except its
// probability field.
func reachable(nt *NodeTable, root Edge) ([]NodeID, error) {
	if root.isZero() {
		return nil, nil
	}
	seen := map[NodeID]bool{root.Dest: true}
	queue := []NodeID{root.Dest}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node, err := nt.NodeOf(id)
		if err != nil {
			return nil, err
		}
		for i := 0; i < node.Kind.arity(); i++ {
			child := node.Edges[i]
			if child.isZero() || seen[child.Dest] {
				continue
			}
			seen[child.Dest] = true
			queue = append(queue, child.Dest)
		}
	}
	ids := make([]NodeID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// PrintStats writes a human-readable summary of table and cache
// occupancy to stdout.
func (s *Session) PrintStats() {
	s.FPrintStats(os.Stdout)
}

// FPrintStats writes the same summary as PrintStats to w.
func (s *Session) FPrintStats(w io.Writer) {
	st := s.Stats()
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "Qubits:      %d\n", s.qubits)
	fmt.Fprintf(w, "Nodes:       %d\n", st.Nodes)
	fmt.Fprintf(w, "Complexes:   %d\n", st.Complexes)
	fmt.Fprintf(w, "Node hits:   %d\n", st.NodeHits)
	fmt.Fprintf(w, "Node misses: %d\n", st.NodeMisses)
	fmt.Fprintf(w, "Add hits:    %d\n", st.AddHits)
	fmt.Fprintf(w, "Add misses:  %d\n", st.AddMisses)
	fmt.Fprintf(w, "Mul hits:    %d\n", st.MulHits)
	fmt.Fprintf(w, "Mul misses:  %d\n", st.MulMisses)
	fmt.Fprintln(w, "==============")
}

// PrintDot writes a GraphViz DOT description of the subgraph reachable
// from root to stdout.
func (s *Session) PrintDot(root Edge) error {
	return s.FPrintDot(os.Stdout, root)
}

// FPrintDotFile writes the same DOT description to filename ("-" means
// stdout), creating or truncating it.
func (s *Session) FPrintDotFile(filename string, root Edge) error {
	if filename == "-" {
		return s.FPrintDot(os.Stdout, root)
	}
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()
	return s.FPrintDot(out, root)
}

// FPrintDot writes a GraphViz DOT description of the subgraph reachable
// from root to w. Matrix nodes draw four labeled quadrant arcs; vector
// nodes draw two. Zero edges are omitted, the same convention the
// teacher's BDD exporter uses for arcs to the false terminal.
func (s *Session) FPrintDot(w io.Writer, root Edge) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, `T [shape=box, label="1", style=filled, height=0.3, width=0.3];`)

	if root.isZero() {
		fmt.Fprintln(bw, "}")
		return nil
	}
	ids, err := reachable(s.nt, root)
	if err != nil {
		return err
	}
	quadLabels := [4]string{"00", "01", "10", "11"}
	for _, id := range ids {
		node, err := s.nt.NodeOf(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%d %s\n", id, dotlabel(int(id), node.Variable))
		for q := 0; q < node.Kind.arity(); q++ {
			edge := node.Edges[q]
			if edge.isZero() {
				continue
			}
			label := quadLabels[q]
			if node.Kind == Vector {
				label = label[1:]
			}
			dest := "T"
			if edge.Dest != Terminal {
				dest = fmt.Sprintf("%d", edge.Dest)
			}
			re, _ := s.ct.Re(edge.Weight)
			im, _ := s.ct.Im(edge.Weight)
			fmt.Fprintf(bw, "%d -> %s [label=\"%s: %.3g%+.3gi\"];\n", id, dest, label, re, im)
		}
	}
	fmt.Fprintln(bw, "}")
	return nil
}

func dotlabel(id int, variable int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[q%d]</FONT>
>];`, variable, id)
}
