package pytoken

import (
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	pstrings "eradicate/internal/platform/strings"
)

const tabSize = 8

const msgBadDedent = "unindent does not match any outer indentation level"

// operators, longest first within each width
var (
	ops3 = []string{"**=", "//=", ">>=", "<<=", "..."}
	ops2 = []string{
		"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "->", ":=",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	}
	ops1 = "+-*/%&|^~<>()[]{},:;.=@"
)

var stringPrefixes = map[string]bool{
	"r": true, "u": true, "f": true, "b": true,
	"br": true, "rb": true, "fr": true, "rf": true,
}

// pending multi-line string
type openString struct {
	start  Pos
	delim  string
	triple bool
	line   string
	buf    strings.Builder
}

// Tokenizer reads Python source one physical line at a time and yields tokens on demand
type Tokenizer struct {
	lines []string
	lnum  int
	last  string

	indents   []int
	parenlev  int
	continued bool

	stmt   Pos
	inStmt bool

	str *openString

	queue []Token
	qi    int
	err   *Error
	done  bool
}

// New returns a Tokenizer over src
func New(src string) *Tokenizer {
	return &Tokenizer{lines: pstrings.SplitLines(src), indents: []int{0}}
}

// Next returns the next token. After ENDMARKER it returns io.EOF; after a failure it keeps
// returning the same *Error
func (t *Tokenizer) Next() (Token, error) {
	for t.qi >= len(t.queue) {
		if t.err != nil {
			return Token{}, t.err
		}
		if t.done {
			return Token{}, io.EOF
		}
		t.queue, t.qi = t.queue[:0], 0
		t.step()
	}
	tok := t.queue[t.qi]
	t.qi++
	return tok, nil
}

// Tokenize drains a Tokenizer over src into a Result
func Tokenize(src string) Result {
	tz := New(src)
	var res Result
	for {
		tok, err := tz.Next()
		if err != nil {
			var te *Error
			if errors.As(err, &te) {
				res.Err = te
			}
			return res
		}
		res.Tokens = append(res.Tokens, tok)
	}
}

func (t *Tokenizer) step() {
	if t.lnum >= len(t.lines) {
		t.finish()
		return
	}
	line := t.lines[t.lnum]
	t.lnum++
	t.last = line
	t.scanLine(line)
}

func (t *Tokenizer) fail(at Pos, kind ErrorKind, msg string) {
	t.err = &Error{Pos: at, Msg: msg, Kind: kind}
}

func (t *Tokenizer) emit(kind Kind, text string, start, end Pos, line string) {
	switch kind {
	case Newline:
		t.inStmt = false
	case NL, Comment, Indent, Dedent, EndMarker:
	default:
		if !t.inStmt {
			t.stmt, t.inStmt = start, true
		}
	}
	t.queue = append(t.queue, Token{Kind: kind, Text: text, Start: start, End: end, Line: line})
}

func (t *Tokenizer) finish() {
	switch {
	case t.str != nil:
		t.fail(t.str.start, ErrEOFInString, "EOF in multi-line string")
		return
	case t.parenlev > 0 || t.continued:
		t.fail(t.stmt, ErrEOFInStatement, "EOF in multi-line statement")
		return
	}

	if t.last != "" && !strings.HasSuffix(t.last, "\n") && !strings.HasPrefix(strings.TrimSpace(t.last), "#") {
		end := Pos{Line: t.lnum, Col: len(t.last)}
		t.emit(Newline, "", end, end, t.last)
	}
	eof := Pos{Line: t.lnum + 1}
	for len(t.indents) > 1 {
		t.indents = t.indents[:len(t.indents)-1]
		t.emit(Dedent, "", eof, eof, "")
	}
	t.emit(EndMarker, "", eof, eof, "")
	t.done = true
}

func (t *Tokenizer) scanLine(line string) {
	lnum, pos, width := t.lnum, 0, len(line)

	switch {
	case t.str != nil:
		end, ok := closeString(line, 0, t.str.delim)
		if !ok {
			if !t.str.triple && !continuesLine(line) {
				text := t.str.buf.String() + line
				t.emit(ErrorToken, text, t.str.start, Pos{lnum, width}, t.str.line)
				t.str = nil
				return
			}
			t.str.buf.WriteString(line)
			return
		}
		t.str.buf.WriteString(line[:end])
		t.emit(String, t.str.buf.String(), t.str.start, Pos{lnum, end}, t.str.line)
		t.str = nil
		pos = end

	case t.parenlev == 0 && !t.continued:
		col := 0
	measure:
		for ; pos < width; pos++ {
			switch line[pos] {
			case ' ':
				col++
			case '\t':
				col = (col/tabSize + 1) * tabSize
			case '\f':
				col = 0
			default:
				break measure
			}
		}
		if pos == width {
			return
		}

		// comment-only and blank lines do not affect indentation
		if c := line[pos]; c == '#' || c == '\r' || c == '\n' {
			if c == '#' {
				text := strings.TrimRight(line[pos:], "\r\n")
				t.emit(Comment, text, Pos{lnum, pos}, Pos{lnum, pos + len(text)}, line)
				pos += len(text)
			}
			t.emit(NL, line[pos:], Pos{lnum, pos}, Pos{lnum, width}, line)
			return
		}

		if col > t.indents[len(t.indents)-1] {
			t.indents = append(t.indents, col)
			t.emit(Indent, line[:pos], Pos{lnum, 0}, Pos{lnum, pos}, line)
		}
		for col < t.indents[len(t.indents)-1] {
			if !contains(t.indents, col) {
				t.fail(Pos{lnum, pos}, ErrIndentation, msgBadDedent)
				return
			}
			t.indents = t.indents[:len(t.indents)-1]
			t.emit(Dedent, "", Pos{lnum, pos}, Pos{lnum, pos}, line)
		}

	default:
		t.continued = false
	}

	t.scanTokens(line, pos)
}

func (t *Tokenizer) scanTokens(line string, pos int) {
	lnum, width := t.lnum, len(line)
	for pos < width {
		for pos < width && (line[pos] == ' ' || line[pos] == '\t' || line[pos] == '\f') {
			pos++
		}
		if pos >= width {
			return
		}
		start := Pos{lnum, pos}
		c := line[pos]

		switch {
		case c == '#':
			text := strings.TrimRight(line[pos:], "\r\n")
			t.emit(Comment, text, start, Pos{lnum, pos + len(text)}, line)
			pos += len(text)

		case c == '\r' || c == '\n':
			kind := Newline
			if t.parenlev > 0 {
				kind = NL
			}
			t.emit(kind, line[pos:], start, Pos{lnum, width}, line)
			return

		case isDigit(c) || (c == '.' && pos+1 < width && isDigit(line[pos+1])):
			end := scanNumber(line, pos)
			t.emit(Number, line[pos:end], start, Pos{lnum, end}, line)
			pos = end

		case c == '\\' && (line[pos+1:] == "\n" || line[pos+1:] == "\r\n"):
			if !t.inStmt {
				t.stmt, t.inStmt = start, true
			}
			t.continued = true
			return

		case isQuote(c) || stringPrefix(line[pos:]) > 0:
			pos = t.scanString(line, pos)
			if t.str != nil {
				return
			}

		default:
			r, size := utf8.DecodeRuneInString(line[pos:])
			if isNameStart(r) {
				end := scanName(line, pos)
				t.emit(Name, line[pos:end], start, Pos{lnum, end}, line)
				pos = end
				continue
			}
			op := matchOp(line[pos:])
			if op == "" || (isCloser(op) && t.parenlev == 0) {
				t.emit(ErrorToken, line[pos:pos+size], start, Pos{lnum, pos + size}, line)
				pos += size
				continue
			}
			switch op {
			case "(", "[", "{":
				t.parenlev++
			case ")", "]", "}":
				t.parenlev--
			}
			t.emit(Op, op, start, Pos{lnum, pos + len(op)}, line)
			pos += len(op)
		}
	}
}

// scanString reads a string literal starting at pos, possibly opening a multi-line string
func (t *Tokenizer) scanString(line string, pos int) int {
	lnum := t.lnum
	start := Pos{lnum, pos}
	p := max(stringPrefix(line[pos:]), 0)
	q := line[pos+p]
	delim := string(q)
	triple := strings.HasPrefix(line[pos+p:], strings.Repeat(delim, 3))
	if triple {
		delim = strings.Repeat(delim, 3)
	}

	if end, ok := closeString(line, pos+p+len(delim), delim); ok {
		t.emit(String, line[pos:end], start, Pos{lnum, end}, line)
		return end
	}
	if triple || continuesLine(line) {
		t.str = &openString{start: start, delim: delim, triple: triple, line: line}
		t.str.buf.WriteString(line[pos:])
		return len(line)
	}

	// unterminated single-quoted string: the quote is an error, scanning resumes after it
	if p > 0 {
		t.emit(Name, line[pos:pos+p], start, Pos{lnum, pos + p}, line)
	}
	qpos := pos + p
	t.emit(ErrorToken, delim, Pos{lnum, qpos}, Pos{lnum, qpos + 1}, line)
	return qpos + 1
}

// closeString finds the end of delim in line starting at from, honouring backslash escapes
func closeString(line string, from int, delim string) (int, bool) {
	for i := from; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case delim[0]:
			if strings.HasPrefix(line[i:], delim) {
				return i + len(delim), true
			}
		}
	}
	return 0, false
}

func continuesLine(line string) bool {
	return strings.HasSuffix(line, "\\\n") || strings.HasSuffix(line, "\\\r\n")
}

// stringPrefix returns the length of a string prefix such as rb before a quote, or -1
func stringPrefix(s string) int {
	for n := 1; n <= 2 && n < len(s); n++ {
		if isQuote(s[n]) && stringPrefixes[strings.ToLower(s[:n])] {
			return n
		}
		if !isASCIILetter(s[n]) {
			break
		}
	}
	return -1
}

func scanNumber(s string, i int) int {
	n := len(s)
	if s[i] == '0' && i+1 < n && strings.IndexByte("xXoObB", s[i+1]) >= 0 {
		i += 2
		for i < n && (isHexDigit(s[i]) || s[i] == '_') {
			i++
		}
		return i
	}
	digits := func() {
		for i < n && (isDigit(s[i]) || s[i] == '_') {
			i++
		}
	}
	digits()
	if i < n && s[i] == '.' {
		i++
		digits()
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < n && isDigit(s[j]) {
			i = j
			digits()
		}
	}
	if i < n && (s[i] == 'j' || s[i] == 'J') {
		i++
	}
	return i
}

func scanName(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isNameChar(r) {
			break
		}
		i += size
	}
	return i
}

func matchOp(s string) string {
	for _, op := range ops3 {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	for _, op := range ops2 {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	if s != "" && strings.IndexByte(ops1, s[0]) >= 0 {
		return s[:1]
	}
	return ""
}

func isCloser(op string) bool { return op == ")" || op == "]" || op == "}" }

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func isQuote(c byte) bool       { return c == '\'' || c == '"' }
func isDigit(c byte) bool       { return '0' <= c && c <= '9' }
func isASCIILetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || (r != utf8.RuneError && unicode.IsLetter(r))
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}
