// Package scan finds the comment lines of a Python file that hold disabled code
package scan

import (
	"strings"

	"eradicate/internal/core/classify"
	"eradicate/internal/core/grammar"
	"eradicate/internal/core/pytoken"
	pstrings "eradicate/internal/platform/strings"
)

// Scanner flags commented-out code using one classifier and oracle. It holds no per-file state
type Scanner struct {
	classifier *classify.Classifier
	oracle     grammar.Oracle
}

// New returns a Scanner
func New(c *classify.Classifier, o grammar.Oracle) *Scanner {
	return &Scanner{classifier: c, oracle: o}
}

var std = New(classify.Default(), grammar.NewPython())

// Default returns the Python scanner used by the package-level functions
func Default() *Scanner { return std }

// CommentedOutCodeLineNumbers returns the ascending line numbers of text that hold disabled code
func CommentedOutCodeLineNumbers(text string) []int { return std.CommentedOutCodeLineNumbers(text) }

// FilterCommentedOutCode returns the lines of text, terminators kept, without the flagged ones
func FilterCommentedOutCode(text string) []string { return std.FilterCommentedOutCode(text) }

// Comments returns the standalone comments of text, see Scanner.Comments
func Comments(text string) ([]CommentLine, *pytoken.Error) { return std.Comments(text) }

// Comments returns the standalone comments that precede any tokenize failure, plus the failure.
// A comment directly after a backslash continuation is left out, since removing it would join lines
func (s *Scanner) Comments(text string) ([]CommentLine, *pytoken.Error) {
	res := s.oracle.Tokenize(text)
	limit := 0
	if res.Err != nil {
		limit = res.Err.Pos.Line
	}

	lines := pstrings.SplitLines(text)
	var out []CommentLine
	for _, tok := range res.Tokens {
		if tok.Kind != pytoken.Comment {
			continue
		}
		n := tok.Start.Line
		if limit > 0 && n >= limit {
			break
		}
		if tok.Start.Col != len(pstrings.LeadingSpace(tok.Line)) {
			continue
		}
		if n >= 2 && continues(lines[n-2]) {
			continue
		}
		out = append(out, CommentLine{Line: n, Column: tok.Start.Col, Text: tok.Text})
	}
	return out, res.Err
}

// Flag returns the set of lines holding disabled code.
// 1 every comment line that holds code on its own
// 2 every block that parses as exactly one statement
// 3 blocks re-formed across flagged lines, until nothing changes, so that filtered output
// rescans to the same result
func (s *Scanner) Flag(text string) *LineSet {
	comments, _ := s.Comments(text)
	flagged := NewLineSet()

	for _, c := range comments {
		if s.classifier.ContainsCode(c.Text) {
			flagged.Add(c.Line)
		}
	}
	s.flagBlocks(group(comments, nil), flagged)

	for {
		var rest []CommentLine
		for _, c := range comments {
			if !flagged.Has(c.Line) {
				rest = append(rest, c)
			}
		}
		if !s.flagBlocks(group(rest, flagged), flagged) {
			return flagged
		}
	}
}

func (s *Scanner) flagBlocks(blocks []Block, flagged *LineSet) bool {
	grew := false
	for _, b := range blocks {
		if len(b.Lines) < 2 {
			continue
		}
		if s.classifier.FragmentIsStatement(b.Source()) && flagged.Add(b.Numbers()...) {
			grew = true
		}
	}
	return grew
}

// CommentedOutCodeLineNumbers returns the ascending, unique flagged line numbers
func (s *Scanner) CommentedOutCodeLineNumbers(text string) []int {
	return s.Flag(text).Sorted()
}

// FilterCommentedOutCode returns the lines of text with flagged lines omitted
func (s *Scanner) FilterCommentedOutCode(text string) []string {
	return Filter(pstrings.SplitLines(text), s.Flag(text))
}

// continues reports whether a code line ends in a backslash continuation
func continues(line string) bool {
	if strings.HasPrefix(strings.TrimLeft(line, " \t\f"), "#") {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(line, " \t\r\n"), "\\")
}
