package analyzer

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// sizeParamChoice is the outcome of running the size-parameter selector
// against one function_definition.
type sizeParamChoice struct {
	name  string
	index int
	found bool
}

// selectSizeParam implements §4.4: prefer a parameter literally named "n";
// otherwise the rightmost non-pointer parameter; otherwise none.
func selectSizeParam(fnDef *tree_sitter.Node, src []byte) sizeParamChoice {
	declarator := fnDef.ChildByFieldName("declarator")
	if declarator == nil {
		return sizeParamChoice{}
	}
	// declarator is a function_declarator for ordinary functions, but a
	// pointer return type (e.g. "int* merge(...)") wraps it in one or more
	// pointer_declarator layers, so the parameter_list must be found by
	// descending rather than by a single ChildByFieldName hop.
	paramList := firstDescendantOfKind(declarator, "parameter_list")
	if paramList == nil {
		return sizeParamChoice{}
	}

	params := childrenOfKind(paramList, "parameter_declaration")
	if len(params) == 0 {
		return sizeParamChoice{}
	}

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = firstIdentifier(p, src)
	}

	for i, name := range names {
		if name == "n" {
			return sizeParamChoice{name: name, index: i, found: true}
		}
	}

	for i := len(params) - 1; i >= 0; i-- {
		if names[i] == "" {
			continue
		}
		if !containsPointerDeclarator(params[i], src) {
			return sizeParamChoice{name: names[i], index: i, found: true}
		}
	}

	return sizeParamChoice{}
}
