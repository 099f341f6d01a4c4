// Package grammar provides a registry of built-in tree-sitter language
// grammars, linked in via CGO at build time.
package grammar

import (
	"context"
	"fmt"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Loader provides access to tree-sitter language grammars.
type Loader interface {
	// Load returns the Language for the given name.
	Load(ctx context.Context, name string) (*tree_sitter.Language, error)

	// Available returns the names of all grammars this loader can serve.
	Available() []string
}

// GrammarInfo describes a known grammar.
type GrammarInfo struct {
	Name    string `json:"name"`
	BuiltIn bool   `json:"built_in"`
}

// BuiltinProvider is a function that returns an unsafe.Pointer to a
// TSLanguage. This is the signature exposed by tree-sitter grammar Go
// bindings.
type BuiltinProvider func() unsafe.Pointer

// ErrGrammarNotFound is returned when a grammar name isn't registered.
type ErrGrammarNotFound struct {
	Name string
}

func (e *ErrGrammarNotFound) Error() string {
	return fmt.Sprintf("grammar %q not found", e.Name)
}
