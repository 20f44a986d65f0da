// Command shadertrack runs constant buffer and immediate tracking queries
// against shader IR fixtures.
//
// Usage:
//
//	shadertrack [-debug] fixture.yaml...
//
// Each query prints one line. With -debug, the tracking steps behind each
// answer follow it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mpyw/shadertrack"
	"github.com/mpyw/shadertrack/internal/debug"
	"github.com/mpyw/shadertrack/internal/irfile"
)

func main() {
	verbose := flag.Bool("debug", false, "print tracking steps after each result")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: shadertrack [-debug] fixture.yaml...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	status := 0
	for _, path := range flag.Args() {
		if err := run(os.Stdout, path, *verbose); err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
		}
	}
	os.Exit(status)
}

func run(w io.Writer, path string, verbose bool) error {
	f, err := irfile.Load(path)
	if err != nil {
		return err
	}

	collector := debug.NewCollector()
	tracker := shadertrack.New(collector)

	for _, q := range f.Queries {
		collector.Reset()
		fmt.Fprintln(w, q.Run(tracker, f.Code))
		if verbose {
			fmt.Fprint(w, debug.FormatTrace(collector.Steps()))
		}
	}
	return nil
}
