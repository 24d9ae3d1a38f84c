package pyast

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// EntityKind identifies a documentable Python entity
type EntityKind string

const (
	EntityModule   EntityKind = "module"
	EntityClass    EntityKind = "class"
	EntityFunction EntityKind = "function"
)

// Entity is a module, class, or function discovered in a file
type Entity struct {
	Kind      EntityKind
	Name      string
	Line      int
	Docstring string
	IsAsync   bool
}

// Function carries per-function metrics
type Function struct {
	Name       string
	Line       int
	Complexity int
	IsAsync    bool
}

// ExceptClause describes one exception handler
type ExceptClause struct {
	Line     int
	TypeName string // empty for a bare except
	Bare     bool
}

// Ident is a named occurrence with its source line
type Ident struct {
	Name string
	Line int
}

// Module is the fully extracted view of one Python source file. All fields
// are plain values; the underlying tree-sitter tree is released after
// extraction.
type Module struct {
	Path          string
	SLOC          int
	Docstring     string
	Entities      []Entity
	Functions     []Function
	Imports       []string
	ExceptClauses []ExceptClause
	AssignedNames []Ident
	InsertZero    []int // lines calling list.insert(0, ...)
	LoopConcat    []int // lines of loops containing identifier += ...
	Halstead      Halstead
}

// Analyzer parses Python sources with tree-sitter
type Analyzer struct {
	parser   *tree_sitter.Parser
	language *tree_sitter.Language
	mu       sync.Mutex // tree-sitter parsers are not thread-safe
}

// NewAnalyzer creates a Python analyzer
func NewAnalyzer() (*Analyzer, error) {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(python.Language())

	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set Python language: %w", err)
	}

	return &Analyzer{
		parser:   parser,
		language: language,
	}, nil
}

// AnalyzeFile reads and analyzes a single Python file
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return a.Analyze(ctx, path, source)
}

// Analyze parses source and extracts all module facts in a single pass
func (a *Analyzer) Analyze(ctx context.Context, path string, source []byte) (*Module, error) {
	a.mu.Lock()
	tree := a.parser.Parse(source, nil)
	a.mu.Unlock()
	if tree == nil {
		return nil, fmt.Errorf("failed to parse Python source: %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax errors in %s", path)
	}

	mod := &Module{
		Path: path,
		SLOC: countNonBlank(source),
	}

	mod.Docstring = blockDocstring(root, source)
	mod.Entities = append(mod.Entities, Entity{
		Kind:      EntityModule,
		Name:      path,
		Line:      1,
		Docstring: mod.Docstring,
	})

	a.walk(root, source, mod, false)
	mod.Halstead = tallyHalstead(root, source)

	return mod, nil
}

// walk traverses the tree once, collecting entities, imports, handlers and
// anti-pattern sites. inLoop tracks whether the current node is inside a
// for/while body.
func (a *Analyzer) walk(node *tree_sitter.Node, source []byte, mod *Module, inLoop bool) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "class_definition":
		name := fieldText(node, "name", source)
		mod.Entities = append(mod.Entities, Entity{
			Kind:      EntityClass,
			Name:      name,
			Line:      line(node),
			Docstring: bodyDocstring(node, source),
		})

	case "function_definition":
		name := fieldText(node, "name", source)
		async := hasChildKind(node, "async")
		mod.Entities = append(mod.Entities, Entity{
			Kind:      EntityFunction,
			Name:      name,
			Line:      line(node),
			Docstring: bodyDocstring(node, source),
			IsAsync:   async,
		})
		mod.Functions = append(mod.Functions, Function{
			Name:       name,
			Line:       line(node),
			Complexity: 1 + countDecisionPoints(node),
			IsAsync:    async,
		})

	case "import_statement":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			switch child.Kind() {
			case "dotted_name":
				mod.Imports = append(mod.Imports, child.Utf8Text(source))
			case "aliased_import":
				if dn := child.NamedChild(0); dn != nil {
					mod.Imports = append(mod.Imports, dn.Utf8Text(source))
				}
			}
		}

	case "import_from_statement":
		if moduleName := node.ChildByFieldName("module_name"); moduleName != nil {
			mod.Imports = append(mod.Imports, moduleName.Utf8Text(source))
		}

	case "except_clause":
		mod.ExceptClauses = append(mod.ExceptClauses, extractExcept(node, source))

	case "assignment":
		collectStoreTargets(node.ChildByFieldName("left"), source, mod)

	case "for_statement":
		collectStoreTargets(node.ChildByFieldName("left"), source, mod)

	case "call":
		if isInsertZero(node, source) {
			mod.InsertZero = append(mod.InsertZero, line(node))
		}

	case "augmented_assignment":
		if inLoop && isStringConcatCandidate(node, source) {
			mod.LoopConcat = append(mod.LoopConcat, line(node))
		}
	}

	childInLoop := inLoop
	if node.Kind() == "for_statement" || node.Kind() == "while_statement" {
		childInLoop = true
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		a.walk(node.Child(i), source, mod, childInLoop)
	}
}

// decisionKinds are the node kinds counted as decision points for cyclomatic
// complexity (McCabe: 1 + decision points).
var decisionKinds = map[string]bool{
	"if_statement":           true,
	"elif_clause":            true,
	"for_statement":          true,
	"while_statement":        true,
	"except_clause":          true,
	"boolean_operator":       true,
	"conditional_expression": true,
	"case_clause":            true,
	"if_clause":              true, // comprehension guards
}

func countDecisionPoints(node *tree_sitter.Node) int {
	count := 0
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if decisionKinds[child.Kind()] {
			count++
		}
		count += countDecisionPoints(child)
	}
	return count
}

// AverageComplexity computes the mean cyclomatic complexity across functions
func (m *Module) AverageComplexity() float64 {
	if len(m.Functions) == 0 {
		return 0
	}
	total := 0
	for _, fn := range m.Functions {
		total += fn.Complexity
	}
	return float64(total) / float64(len(m.Functions))
}

// TotalComplexity is the file-level cyclomatic complexity (base 1)
func (m *Module) TotalComplexity() int {
	total := 1
	for _, fn := range m.Functions {
		total += fn.Complexity - 1
	}
	return total
}

// ImportsModule reports whether any import path contains the given fragment
func (m *Module) ImportsModule(fragment string) bool {
	for _, imp := range m.Imports {
		if strings.Contains(imp, fragment) {
			return true
		}
	}
	return false
}

func extractExcept(node *tree_sitter.Node, source []byte) ExceptClause {
	ec := ExceptClause{Line: line(node), Bare: true}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "block" {
			continue
		}
		// First non-block named child is the exception type expression.
		// `except E as name` parses the alias into the same clause; the type
		// expression always comes first.
		ec.TypeName = child.Utf8Text(source)
		ec.Bare = false
		break
	}
	return ec
}

// collectStoreTargets gathers identifiers assigned on the left side of an
// assignment or loop target, including tuple unpacking.
func collectStoreTargets(node *tree_sitter.Node, source []byte, mod *Module) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "identifier":
		mod.AssignedNames = append(mod.AssignedNames, Ident{
			Name: node.Utf8Text(source),
			Line: line(node),
		})
	case "pattern_list", "tuple_pattern", "list_pattern":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			collectStoreTargets(node.NamedChild(i), source, mod)
		}
	}
}

func isInsertZero(call *tree_sitter.Node, source []byte) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "attribute" {
		return false
	}
	attr := fn.ChildByFieldName("attribute")
	if attr == nil || attr.Utf8Text(source) != "insert" {
		return false
	}
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() != 2 {
		return false
	}
	first := args.NamedChild(0)
	return first != nil && first.Kind() == "integer" && first.Utf8Text(source) == "0"
}

// isStringConcatCandidate reports whether an augmented assignment looks like
// `name += ...`, the usual shape of string building in a loop.
func isStringConcatCandidate(node *tree_sitter.Node, source []byte) bool {
	op := node.ChildByFieldName("operator")
	if op == nil || op.Utf8Text(source) != "+=" {
		return false
	}
	left := node.ChildByFieldName("left")
	return left != nil && left.Kind() == "identifier"
}

// bodyDocstring returns the docstring of a class or function definition
func bodyDocstring(node *tree_sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	return blockDocstring(body, source)
}

// blockDocstring returns the docstring heading a block or module node
func blockDocstring(block *tree_sitter.Node, source []byte) string {
	first := block.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	str := first.NamedChild(0)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	return stripStringQuotes(str.Utf8Text(source))
}

func stripStringQuotes(s string) string {
	// Drop string prefixes (r, b, f, u and combinations)
	s = strings.TrimLeft(s, "rRbBfFuU")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}

func fieldText(node *tree_sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}

func hasChildKind(node *tree_sitter.Node, kind string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func line(node *tree_sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func countNonBlank(source []byte) int {
	count := 0
	for _, ln := range strings.Split(string(source), "\n") {
		if strings.TrimSpace(ln) != "" {
			count++
		}
	}
	return count
}
