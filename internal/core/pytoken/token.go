// Package pytoken tokenizes Python source with positions, tolerating failure part way through a file
package pytoken

import "fmt"

// Kind classifies a token
type Kind uint8

// Token kinds
const (
	ErrorToken Kind = iota
	Comment
	NL
	Newline
	Indent
	Dedent
	Name
	Number
	String
	Op
	EndMarker
)

var kindNames = [...]string{
	ErrorToken: "ERRORTOKEN",
	Comment:    "COMMENT",
	NL:         "NL",
	Newline:    "NEWLINE",
	Indent:     "INDENT",
	Dedent:     "DEDENT",
	Name:       "NAME",
	Number:     "NUMBER",
	String:     "STRING",
	Op:         "OP",
	EndMarker:  "ENDMARKER",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Pos is a source position. Line is 1-based, Col is a 0-based byte offset into the line
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is one lexical token
type Token struct {
	Kind  Kind
	Text  string
	Start Pos
	End   Pos
	// Line is the physical line the token starts on, terminator included
	Line string
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s-%s", t.Kind, t.Text, t.Start, t.End)
}

// ErrorKind classifies a tokenization failure
type ErrorKind uint8

// Failure kinds
const (
	ErrIndentation ErrorKind = iota + 1
	ErrEOFInString
	ErrEOFInStatement
)

// Error is a tokenization failure. Tokens before Pos remain valid
type Error struct {
	Pos  Pos
	Msg  string
	Kind ErrorKind
}

func (e *Error) Error() string { return fmt.Sprintf("tokenize %s: %s", e.Pos, e.Msg) }

// Result is a token stream prefix plus the failure that ended it, if any
type Result struct {
	Tokens []Token
	Err    *Error
}

// OK reports whether the whole input tokenized
func (r Result) OK() bool { return r.Err == nil }

// Has reports whether any token of kind k was produced
func (r Result) Has(k Kind) bool {
	for _, t := range r.Tokens {
		if t.Kind == k {
			return true
		}
	}
	return false
}
