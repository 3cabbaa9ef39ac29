// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command qmddstat builds a small GHZ-state circuit, runs both simulators
// over it, and prints a stats summary. It exists to exercise the package
// from outside, the way rudd's Example_basic does, not as a real
// circuit-building front end — method names like x/cx/swap and any
// interactive REPL are deliberately left to an external collaborator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dalzilio/qmdd"
)

func main() {
	qubits := flag.Int("qubits", 3, "number of qubits in the demo GHZ circuit")
	shots := flag.Int("shots", 0, "if > 0, also run weak simulation for this many shots")
	envfile := flag.String("env", "", "optional .env file to load configuration from")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	opts := qmdd.ConfigFromEnv(*envfile)
	if *verbose {
		opts = append(opts, qmdd.WithLogger(qmdd.NewLogger(os.Stderr)))
	}

	sess, err := qmdd.New(*qubits, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qmddstat:", err)
		os.Exit(1)
	}

	circ := ghz(*qubits)
	state, err := sess.Run(sess.GroundState(), circ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qmddstat:", err)
		os.Exit(1)
	}

	strong, err := sess.Strong(state)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qmddstat:", err)
		os.Exit(1)
	}
	fmt.Printf("session %s, GHZ(%d):\n", sess.ID(), *qubits)
	amps, err := qmdd.All(strong)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qmddstat:", err)
		os.Exit(1)
	}
	for _, amp := range amps {
		fmt.Printf("  %s: %g%+gi\n", amp.State, amp.Re, amp.Im)
	}

	if *shots > 0 {
		weak, err := sess.Weak(state)
		if err != nil {
			fmt.Fprintln(os.Stderr, "qmddstat:", err)
			os.Exit(1)
		}
		results, err := weak.Shots(sess.Rng(), *shots)
		if err != nil {
			fmt.Fprintln(os.Stderr, "qmddstat:", err)
			os.Exit(1)
		}
		fmt.Printf("weak sampling, seed %d, %d shots:\n", sess.Seed(), *shots)
		for state, r := range results {
			fmt.Printf("  %s: %d/%d\n", state, r.Occurrences, *shots)
		}
	}

	sess.PrintStats()
}

// ghz builds H(0); CX(0,1); CX(1,2); ...; CX(n-2,n-1).
func ghz(qubits int) qmdd.Circuit {
	circ := qmdd.Circuit{qmdd.Gate(0, qmdd.GateH)}
	for q := 0; q < qubits-1; q++ {
		circ = append(circ, qmdd.Gate(q+1, qmdd.GateX, qmdd.Control{Qubit: q, Bit: true}))
	}
	return circ
}
