// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command godzilla is the thin CLI entry point: it prints version/help
// information, reads the JSON mesh file given by -i and, with --verbose,
// reports its dimension and vertex/cell counts. It builds no fem.Problem
// and runs no solve (there is no YAML input-file format to parse — that
// remains an explicit non-goal, see DESIGN.md).
//
// Grounded on the teacher's root main.go (flag parsing, rank-0-only
// banner, mpi.Start/Stop lifecycle, recover-and-report error handling)
// and original_source's CmdLineArgParser/CommandLineInterface option set
// (-i, --verbose, --no-colors, --version, -h/--help).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cpmech/gofem/mesh"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

const version = "3.0.0"

func main() {
	var inputFile string
	var verbose int
	var noColors bool
	var showVersion bool

	flag.StringVar(&inputFile, "i", "", "mesh/problem input file")
	flag.IntVar(&verbose, "verbose", 0, "verbosity level")
	flag.BoolVar(&noColors, "no-colors", false, "disable colored output")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Println("godzilla v" + version)
		return
	}

	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				printErr(noColors, err)
				os.Exit(1)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	banner(noColors)
	m := mesh.ReadJSON(inputFile)
	if verbose > 0 && mpi.Rank() == 0 {
		utl.Pf("godzilla: read mesh %q: dim=%d verts=%d cells=%d\n", inputFile, m.Dim, len(m.Verts), len(m.Cells))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: godzilla -i FILE [--verbose N] [--no-colors] [--version]")
	flag.PrintDefaults()
}

func banner(noColors bool) {
	if mpi.Rank() != 0 {
		return
	}
	if noColors {
		utl.Pf("\ngodzilla -- Go Finite Element Method\n\n")
		return
	}
	utl.PfWhite("\ngodzilla -- Go Finite Element Method\n\n")
}

func printErr(noColors bool, err interface{}) {
	if noColors {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return
	}
	utl.PfRed("ERROR: %v\n", err)
}
