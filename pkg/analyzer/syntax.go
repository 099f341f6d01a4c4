package analyzer

import (
	"context"
	"strings"

	"github.com/jmylchreest/aide-complexity/pkg/grammar"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// LangC is the only language the recurrence-inference engine understands.
// Analyze still accepts other language strings — it just returns the
// empty-summary shape for them, per the Non-goals.
const LangC = "c"

// syntaxProvider wraps a grammar.Loader (which caches each loaded
// *tree_sitter.Language) and exposes parse as the single entry point the
// walker needs.
type syntaxProvider struct {
	loader grammar.Loader
}

func newSyntaxProvider(loader grammar.Loader) *syntaxProvider {
	return &syntaxProvider{loader: loader}
}

// parse parses code as the given language and returns the root node plus
// a Close func the caller must defer. A nil root (ok=false) means the
// language could not be loaded or the parse produced no tree.
func (s *syntaxProvider) parse(lang string, code []byte) (root *tree_sitter.Node, closeFn func(), ok bool) {
	language, err := s.loader.Load(context.Background(), lang)
	if err != nil || language == nil {
		return nil, func() {}, false
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, func() {}, false
	}

	tree := parser.Parse(code, nil)
	if tree == nil {
		parser.Close()
		return nil, func() {}, false
	}

	closeFn = func() {
		tree.Close()
		parser.Close()
	}
	return tree.RootNode(), closeFn, true
}

// nodeText returns the source substring spanned by node.
func nodeText(node *tree_sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(src)
}

// firstIdentifier returns the text of the first descendant of node whose
// Kind is "identifier" (depth-first, node itself included).
func firstIdentifier(node *tree_sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "identifier" {
		return nodeText(node, src)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstIdentifier(node.Child(i), src); found != "" {
			return found
		}
	}
	return ""
}

// containsPointerDeclarator reports whether node's subtree contains a
// "pointer_declarator" node or a literal "*" in its text — used by the
// size-parameter selector to skip pointer parameters.
func containsPointerDeclarator(node *tree_sitter.Node, src []byte) bool {
	if node == nil {
		return false
	}
	if node.Kind() == "pointer_declarator" {
		return true
	}
	if strings.Contains(nodeText(node, src), "*") {
		return true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if containsPointerDeclarator(node.Child(i), src) {
			return true
		}
	}
	return false
}

// childrenOfKind returns the direct children of node whose Kind matches
// any of kinds.
func childrenOfKind(node *tree_sitter.Node, kinds ...string) []*tree_sitter.Node {
	if node == nil {
		return nil
	}
	var out []*tree_sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		for _, k := range kinds {
			if child.Kind() == k {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

// firstDescendantOfKind performs a depth-first search for the first node
// (including node itself) whose Kind equals kind.
func firstDescendantOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstDescendantOfKind(node.Child(i), kind); found != nil {
			return found
		}
	}
	return nil
}
