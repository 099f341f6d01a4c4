package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jmylchreest/aide-complexity/pkg/grammar"
)

// cmdGrammarDispatcher implements "aide-complexity grammar list [--json]".
func cmdGrammarDispatcher(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("grammar: expected a subcommand (list)")
	}

	switch args[0] {
	case "list":
		return cmdGrammarList(args[1:])
	default:
		return fmt.Errorf("grammar: unknown subcommand %q", args[0])
	}
}

func cmdGrammarList(args []string) error {
	jsonOut := hasFlag(args, "--json")

	registry := grammar.NewBuiltinRegistry()
	names := registry.Names()
	sort.Strings(names)

	infos := make([]grammar.GrammarInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, grammar.GrammarInfo{Name: name, BuiltIn: registry.Has(name)})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Println("Compiled-in grammars:")
	for _, info := range infos {
		fmt.Printf("  %s\n", info.Name)
	}
	return nil
}
