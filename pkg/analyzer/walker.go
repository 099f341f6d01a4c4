package analyzer

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// frame is the mutable per-function analysis state described as WalkState
// in the specification. It is reset on function entry and finalized
// (turned into a FunctionRecord and, if applicable, a RecurrenceEntry) on
// function exit. C forbids nested function definitions, so a single
// current-frame pointer is sufficient — there is never more than one live
// frame at a time.
type frame struct {
	name           string
	loopDepth      int
	maxLoopDepth   int
	loopCount      int
	sawRecursive   bool
	calls          []string
	sizeParamName  string
	sizeParamIndex int
	hasSizeParam   bool
	aliases        aliasTable
	complexity     int

	selfCallsA int
	hasDivideB bool
	divideB    int
	bAmbig     bool
	hasDecr    bool
	decreaseC  int
}

func newFrame(name string) *frame {
	return &frame{name: name, complexity: 1, aliases: aliasTable{}}
}

// considerDivideB folds a newly observed divide factor k into the frame's
// running b, keeping the smallest factor and flagging ambiguity when two
// distinct factors are seen across different self-calls.
func (f *frame) considerDivideB(k int) {
	if !f.hasDivideB {
		f.hasDivideB = true
		f.divideB = k
		return
	}
	if k != f.divideB {
		f.bAmbig = true
		if k < f.divideB {
			f.divideB = k
		}
	}
}

// considerDecreaseC folds a newly observed decrement c, keeping the
// smallest value seen.
func (f *frame) considerDecreaseC(c int) {
	if !f.hasDecr {
		f.hasDecr = true
		f.decreaseC = c
		return
	}
	if c < f.decreaseC {
		f.decreaseC = c
	}
}

// walker drives the depth-first traversal over the whole translation
// unit, accumulating global calls/loops alongside the per-function frame.
type walker struct {
	src         []byte
	globalCalls []string
	functions   []FunctionRecord
	recurrences []RecurrenceEntry
	loops       []LoopRecord
	cur         *frame
}

func newWalker(src []byte) *walker {
	return &walker{src: src}
}

func (w *walker) visit(node *tree_sitter.Node) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_definition":
		w.visitFunctionDefinition(node)
		return

	case "for_statement", "while_statement":
		w.visitLoop(node)
		return

	case "if_statement", "case_statement", "do_statement", "conditional_expression":
		w.bumpComplexity()
		w.visitChildren(node)
		return

	case "binary_expression":
		if isShortCircuitOperator(node, w.src) {
			w.bumpComplexity()
		}
		w.visitChildren(node)
		return

	case "assignment_expression", "init_declarator":
		w.visitAlias(node)
		w.visitChildren(node)
		return

	case "call_expression":
		w.visitCall(node)
		return

	default:
		w.visitChildren(node)
	}
}

func (w *walker) visitChildren(node *tree_sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		w.visit(node.Child(i))
	}
}

func (w *walker) bumpComplexity() {
	if w.cur != nil {
		w.cur.complexity++
	}
}

// isShortCircuitOperator reports whether a binary_expression node's
// operator token is "&&" or "||", matching the teacher's getOperator scan
// over direct children rather than relying on a named "operator" field.
func isShortCircuitOperator(node *tree_sitter.Node, src []byte) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		text := nodeText(node.Child(i), src)
		if text == "&&" || text == "||" {
			return true
		}
	}
	return false
}

func (w *walker) visitLoop(node *tree_sitter.Node) {
	kind := "for"
	if node.Kind() == "while_statement" {
		kind = "while"
	}

	if w.cur != nil {
		w.cur.loopDepth++
		w.cur.loopCount++
		if w.cur.loopDepth > w.cur.maxLoopDepth {
			w.cur.maxLoopDepth = w.cur.loopDepth
		}
		w.cur.complexity++
		w.loops = append(w.loops, LoopRecord{Kind: kind, Bound: "n", Depth: w.cur.loopDepth})
	} else {
		w.loops = append(w.loops, LoopRecord{Kind: kind, Bound: "n", Depth: 1})
	}

	w.visitChildren(node)

	if w.cur != nil {
		w.cur.loopDepth--
	}
}

func (w *walker) visitAlias(node *tree_sitter.Node) {
	if w.cur == nil || !w.cur.hasSizeParam {
		return
	}

	var lhsNode, rhsNode *tree_sitter.Node
	if node.Kind() == "assignment_expression" {
		lhsNode = node.ChildByFieldName("left")
		rhsNode = node.ChildByFieldName("right")
	} else { // init_declarator
		lhsNode = node
		rhsNode = node.ChildByFieldName("value")
	}
	if rhsNode == nil {
		return
	}

	name := firstIdentifier(lhsNode, w.src)
	if name == "" {
		return
	}

	rhsText := nodeText(rhsNode, w.src)
	if r, ok := analyzeExpr(rhsText, w.cur.sizeParamName); ok {
		w.cur.aliases.upsert(name, r)
	}
}

func (w *walker) visitCall(node *tree_sitter.Node) {
	targetNode := node.ChildByFieldName("function")
	name := strings.TrimSpace(nodeText(targetNode, w.src))

	if name != "" {
		w.globalCalls = append(w.globalCalls, name)
		if w.cur != nil {
			w.cur.calls = append(w.cur.calls, name)
		}
	}

	if w.cur != nil && name == w.cur.name {
		w.cur.sawRecursive = true
		w.analyzeSelfCall(node)
	}

	w.visitChildren(node)
}

// analyzeSelfCall implements §4.6: extract the size-parameter argument
// from a self-call's argument list and feed it through the expression
// analyzer (or, failing that, the alias table).
func (w *walker) analyzeSelfCall(call *tree_sitter.Node) {
	f := w.cur
	f.selfCallsA++

	if !f.hasSizeParam {
		return
	}

	argsNode := call.ChildByFieldName("arguments")
	if argsNode == nil {
		return
	}

	tokens := splitArguments(nodeText(argsNode, w.src))
	if f.sizeParamIndex >= len(tokens) {
		return
	}
	token := strings.TrimSpace(tokens[f.sizeParamIndex])

	if r, ok := analyzeExpr(token, f.sizeParamName); ok {
		switch r.kind {
		case kindDivide:
			f.considerDivideB(r.k)
		case kindDecrease:
			f.considerDecreaseC(r.k)
		}
		return
	}

	if isSimpleIdentifier(token) {
		if alias, ok := f.aliases.lookup(token); ok {
			switch alias.kind {
			case kindDivide:
				f.considerDivideB(alias.k)
			case kindDecrease:
				f.considerDecreaseC(alias.k)
			}
		}
	}
}

// splitArguments strips the outer parentheses from a call_expression's
// "arguments" field text and splits on every comma. No nested-comma
// handling is performed, per §4.6.
func splitArguments(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (w *walker) visitFunctionDefinition(node *tree_sitter.Node) {
	declarator := node.ChildByFieldName("declarator")
	name := firstIdentifier(declarator, w.src)

	caller := w.cur
	f := newFrame(name)
	if choice := selectSizeParam(node, w.src); choice.found {
		f.sizeParamName = choice.name
		f.sizeParamIndex = choice.index
		f.hasSizeParam = true
	}
	w.cur = f

	w.visitChildren(node)

	w.cur = caller
	w.finalizeFunction(f)
}

// finalizeFunction turns a completed frame into a FunctionRecord and,
// when applicable, a Recurrence — appended both to the FunctionRecord and
// flattened into the walker's top-level recurrences list.
func (w *walker) finalizeFunction(f *frame) {
	rec := FunctionRecord{
		Name:         f.name,
		IsRecursive:  f.sawRecursive,
		Calls:        nonNilStrings(f.calls),
		LoopCount:    f.loopCount,
		MaxLoopDepth: f.maxLoopDepth,
		Complexity:   f.complexity,
	}
	if f.hasSizeParam {
		rec.SizeParam = f.sizeParamName
		idx := f.sizeParamIndex
		rec.SizeParamIndex = &idx
	}

	if f.sawRecursive {
		r := Recurrence{
			A: f.selfCallsA,
			F: workPerLevel(f.maxLoopDepth),
		}
		switch {
		case f.hasDivideB && f.divideB > 1:
			r.Model = kindDivide
			r.B = f.divideB
			r.BAmbiguous = f.bAmbig
		case f.hasDecr:
			r.Model = kindDecrease
			r.C = f.decreaseC
		}
		rec.Recurrence = &r
		w.recurrences = append(w.recurrences, RecurrenceEntry{
			Function:   f.name,
			A:          r.A,
			F:          r.F,
			B:          r.B,
			Model:      r.Model,
			C:          r.C,
			BAmbiguous: r.BAmbiguous,
		})
	}

	w.functions = append(w.functions, rec)
}

// workPerLevel derives the f(n) term from the deepest loop nesting
// observed lexically inside the function body.
func workPerLevel(maxLoopDepth int) string {
	switch maxLoopDepth {
	case 0:
		return "1"
	case 1:
		return "n"
	default:
		return "n^" + strconv.Itoa(maxLoopDepth)
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
