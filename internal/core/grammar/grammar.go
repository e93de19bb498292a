// Package grammar decides whether text is a syntactically valid Python fragment
package grammar

import (
	"context"
	"sync"

	"eradicate/internal/core/pytoken"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Oracle tokenizes source and judges fragments for one host grammar
type Oracle interface {
	// Tokenize returns the token prefix of src and the failure that ended it, if any
	Tokenize(src string) pytoken.Result
	// Valid reports whether fragment parses as one or more statements
	Valid(fragment string) bool
	// Statements returns the number of top-level statements in fragment, false when it does not parse
	Statements(fragment string) (int, bool)
}

// Python is the Oracle for Python 3 source. It is safe for concurrent use
type Python struct{}

// parsers are not safe for concurrent use, so each call borrows one
var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		p.SetLanguage(python.GetLanguage())
		return p
	},
}

// hard keywords of Python 3. tree-sitter recovers a misplaced one as an identifier
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true, "def": true,
	"del": true, "elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// NewPython returns the Python oracle
func NewPython() *Python { return &Python{} }

// Tokenize implements Oracle
func (*Python) Tokenize(src string) pytoken.Result { return pytoken.Tokenize(src) }

// Valid implements Oracle
func (py *Python) Valid(fragment string) bool {
	_, ok := py.Statements(fragment)
	return ok
}

// Statements implements Oracle. A fragment is accepted when
// 1 it tokenizes to the end without error tokens
// 2 it does not open with an indent
// 3 the tree-sitter parse has no ERROR or MISSING nodes
// 4 no node is a recovery python itself would reject, see recovered
// 5 it holds at least one statement
func (*Python) Statements(fragment string) (int, bool) {
	res := pytoken.Tokenize(fragment)
	if !res.OK() || res.Has(pytoken.ErrorToken) {
		return 0, false
	}
	if startsIndented(res.Tokens) {
		return 0, false
	}

	p := parserPool.Get().(*sitter.Parser)
	defer parserPool.Put(p)

	tree, err := p.ParseCtx(context.Background(), nil, []byte(fragment))
	if err != nil || tree == nil {
		return 0, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() || recovered(root, []byte(fragment)) {
		return 0, false
	}
	n := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if root.NamedChild(i).Type() != "comment" {
			n++
		}
	}
	return n, n > 0
}

// recovered reports nodes tree-sitter accepts but python does not: a keyword used as an
// identifier, or an annotation whose type starts on a line below its colon
func recovered(n *sitter.Node, src []byte) bool {
	switch n.Type() {
	case "identifier":
		if keywords[n.Content(src)] {
			return true
		}
	case "assignment":
		if splitAnnotation(n) {
			return true
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if recovered(n.NamedChild(i), src) {
			return true
		}
	}
	return false
}

func splitAnnotation(n *sitter.Node) bool {
	typ := n.ChildByFieldName("type")
	if typ == nil {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == ":" {
			return typ.StartPoint().Row != c.StartPoint().Row
		}
	}
	return false
}

func startsIndented(toks []pytoken.Token) bool {
	for _, t := range toks {
		switch t.Kind {
		case pytoken.NL, pytoken.Comment:
			continue
		case pytoken.Indent:
			return true
		}
		return false
	}
	return false
}
