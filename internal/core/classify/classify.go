// Package classify judges whether a comment holds disabled Python code rather than prose
package classify

import (
	"regexp"
	"strings"

	"eradicate/internal/core/grammar"
	pstrings "eradicate/internal/platform/strings"
)

// code symbols, any one of which lets a remainder reach the grammar check
const indicators = "()[]{}:=%"

// statement-leading keywords that also let a remainder reach the grammar check
var leadingKeywords = map[string]bool{
	"print": true, "return": true, "break": true, "continue": true,
	"import": true, "from": true, "def": true, "class": true,
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"try": true, "except": true, "finally": true, "with": true,
}

// clause headers that are code on their own
var bareHeaders = map[string]bool{"else:": true, "try:": true, "finally:": true, "except:": true}

// keywords that open a clause header
var compoundKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "while": true, "try": true,
	"except": true, "finally": true, "with": true, "def": true, "class": true,
	"async": true, "match": true, "case": true,
}

// tool directives that parse as annotations but are never code
var pragmas = []string{"noqa", "type:", "pylint:", "pyright:", "mypy:", "fmt:", "isort:", "nosec", "pragma:"}

var (
	cookieRe  = regexp.MustCompile(`coding[:=][ \t]*[-\w.]+`)
	literalRe = regexp.MustCompile(`^(?:[-+]?(?:\d[\d_]*(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?[jJ]?|'[^']*'|"[^"]*")$`)
)

// opening clauses tried before a header so elif, except and else sit in a legal position
var openers = []string{"", "if True:\n    pass\n", "try:\n    pass\n", "for _ in ():\n    pass\n"}

// Classifier applies the comment rules against one grammar oracle
type Classifier struct {
	oracle grammar.Oracle
}

// New returns a Classifier backed by o
func New(o grammar.Oracle) *Classifier { return &Classifier{oracle: o} }

var std = New(grammar.NewPython())

// Default returns the Python classifier used by the package-level functions
func Default() *Classifier { return std }

// ContainsCode reports whether one comment line looks like code, using the Python classifier
func ContainsCode(line string) bool { return std.ContainsCode(line) }

// FragmentContainsCode reports whether stripped comment text looks like code, using the Python classifier
func FragmentContainsCode(text string) bool { return std.FragmentContainsCode(text) }

// Strip returns the text of a standalone comment line with leading whitespace, the run of # and
// surrounding whitespace removed. ok is false when line is not a comment
func Strip(line string) (rest string, ok bool) {
	s := strings.TrimLeft(line, " \t\f\v")
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(s, "#")), true
}

// IsPragma reports whether a stripped remainder is a tool directive or an encoding cookie
func IsPragma(rest string) bool {
	low := strings.ToLower(strings.TrimSpace(rest))
	for _, p := range pragmas {
		if strings.HasPrefix(low, p) {
			return true
		}
	}
	return cookieRe.MatchString(low)
}

// ContainsCode reports whether a raw comment line, marker included, holds code
func (c *Classifier) ContainsCode(line string) bool {
	rest, ok := Strip(line)
	if !ok {
		return false
	}
	return c.judge(rest, false)
}

// FragmentContainsCode reports whether already stripped, possibly multi-line text holds code
func (c *Classifier) FragmentContainsCode(text string) bool {
	return c.judge(text, false)
}

// FragmentIsStatement reports whether multi-line text holds code that parses as exactly one
// statement, such as a compound statement or a call split across lines
func (c *Classifier) FragmentIsStatement(text string) bool {
	return c.judge(text, true)
}

// judge applies, first match wins
// 1 empty text is prose
// 2 pragmas and encoding cookies are never code
// 3 bare numbers and literal lists are data
// 4 without a code symbol or leading keyword the text is prose
// 5 a trailing colon is a header when it follows a compound keyword or a closing bracket,
// checked with a stub suite
// 6 otherwise the grammar decides
func (c *Classifier) judge(text string, single bool) bool {
	text = strings.Trim(text, "\r\n")
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if IsPragma(trimmed) {
		return false
	}
	if isLiteralList(trimmed) {
		return false
	}
	if !strings.ContainsAny(trimmed, indicators) && !leadingKeywords[firstWord(trimmed)] {
		return false
	}

	if !strings.Contains(text, "\n") {
		text = trimmed
	}
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	if strings.HasSuffix(strings.TrimSpace(last), ":") {
		if !isHeader(last) {
			return false
		}
		if !single && len(lines) == 1 && bareHeaders[strings.Join(strings.Fields(last), "")] {
			return true
		}
		stub := text + "\n" + pstrings.LeadingSpace(last) + "    pass"
		for _, opener := range openers {
			if c.parses(opener+stub, single) {
				return true
			}
		}
		return false
	}
	return c.parses(text, single)
}

func (c *Classifier) parses(src string, single bool) bool {
	if !single {
		return c.oracle.Valid(src)
	}
	n, ok := c.oracle.Statements(src)
	return ok && n == 1
}

// isHeader reports whether a line ending in a colon reads as a clause header rather than a
// prose label such as "Note:"
func isHeader(line string) bool {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":"))
	if compoundKeywords[firstWord(s)] {
		return true
	}
	return s != "" && strings.ContainsAny(s[len(s)-1:], ")]}")
}

func isLiteralList(s string) bool {
	items := strings.Split(s, ",")
	if strings.TrimSpace(items[len(items)-1]) == "" && len(items) > 1 {
		items = items[:len(items)-1]
	}
	for _, it := range items {
		if !literalRe.MatchString(strings.TrimSpace(it)) {
			return false
		}
	}
	return true
}

func firstWord(s string) string {
	i := 0
	for i < len(s) && (s[i] == '_' || isAlnum(s[i])) {
		i++
	}
	return s[:i]
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
