// Package main provides the CLI for aide-complexity, a static analyzer
// that extracts algorithmic-complexity evidence (loop statistics, call
// graphs, and inferred recurrence relations) from C source.
package main

import (
	"fmt"
	"os"

	"github.com/jmylchreest/aide-complexity/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if err := runCommand(cmd, args); err != nil {
		fatal("%v", err)
	}
}

func runCommand(cmd string, args []string) error {
	switch cmd {
	case "analyze":
		return cmdAnalyze(args)
	case "serve":
		return cmdServe(args)
	case "grammar":
		return cmdGrammarDispatcher(args)
	case "watch":
		return cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	case "version", "-v", "--version":
		return cmdVersion(args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func cmdVersion(args []string) error {
	for _, arg := range args {
		if arg == "--json" {
			fmt.Println(version.JSON())
			return nil
		}
	}
	fmt.Println(version.String())
	return nil
}

func printUsage() {
	fmt.Printf(`aide-complexity %s - static analyzer for algorithmic-complexity evidence

Usage:
  aide-complexity <command> [arguments]

Commands:
  analyze    Analyze a C source file (or stdin) for loops, calls and recurrences
  serve      Start the HTTP analysis server
  grammar    List the compiled-in tree-sitter grammars
  watch      Watch paths and re-analyze changed C files
  version    Show version information

Environment:
  AIDE_COMPLEXITY_ADDR          Default bind address for "serve" (default: %s)
  AIDE_COMPLEXITY_REMOTE        Default --remote URL for "analyze"
  AIDE_COMPLEXITY_WATCH_DELAY   Debounce delay for "watch" (default: %s)
  AIDE_PPROF_ENABLE=1           Enable pprof profiling server (build tag "pprof")
  AIDE_PPROF_ADDR               pprof server address (default: localhost:6060)

Examples:
  aide-complexity analyze quicksort.c
  aide-complexity analyze - < snippet.c --json
  aide-complexity analyze quicksort.c --remote=http://localhost:8080
  aide-complexity serve --addr=:8080
  aide-complexity grammar list --json
  aide-complexity watch ./src
`, version.Short(), DefaultServeAddr, DefaultWatchDebounce)
}
