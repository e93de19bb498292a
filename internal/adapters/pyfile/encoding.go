package pyfile

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	perr "eradicate/internal/platform/errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Encoding names with special handling
const (
	UTF8    = "utf-8"
	UTF8BOM = "utf-8-sig"
	Latin1  = "latin-1"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

var (
	cookieRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)
	blankRe  = regexp.MustCompile(`^[ \t\f]*(?:[#\r\n]|$)`)
)

// python codec spellings that IANA names differently
var aliases = map[string]string{
	"latin1":  "iso-8859-1",
	"latin-1": "iso-8859-1",
	"l1":      "iso-8859-1",
	"ascii":   "us-ascii",
	"646":     "us-ascii",
}

// codec decodes and encodes one text encoding. A nil enc is UTF-8
type codec struct {
	enc   encoding.Encoding
	bom   bool
	ascii bool
}

// DetectEncoding returns the encoding of Python source data: a UTF-8 BOM, else a coding cookie on
// one of the first two lines, else utf-8. An unknown or conflicting declaration, or data that does
// not decode, yields latin-1
func DetectEncoding(data []byte) string {
	name, ok := declared(data)
	if !ok {
		return Latin1
	}
	c, ok := lookup(name)
	if !ok {
		return Latin1
	}
	if _, err := c.decode(data); err != nil {
		return Latin1
	}
	return name
}

// declared returns the encoding the data claims, false when the claim is contradictory
func declared(data []byte) (string, bool) {
	hasBOM := bytes.HasPrefix(data, bom)
	rest := data
	if hasBOM {
		rest = data[len(bom):]
	}

	first, second := headLines(rest)
	name, found := cookie(first)
	if !found && blankRe.Match(first) {
		name, found = cookie(second)
	}

	switch {
	case !found && hasBOM:
		return UTF8BOM, true
	case !found:
		return UTF8, true
	case hasBOM && name != UTF8:
		return "", false
	case hasBOM:
		return UTF8BOM, true
	}
	return name, true
}

func headLines(data []byte) (first, second []byte) {
	first, rest, _ := bytes.Cut(data, []byte("\n"))
	second, _, _ = bytes.Cut(rest, []byte("\n"))
	return first, second
}

func cookie(line []byte) (string, bool) {
	m := cookieRe.FindSubmatch(line)
	if m == nil {
		return "", false
	}
	return normalName(string(m[1])), true
}

// normalName folds the common spellings of utf-8 and latin-1
func normalName(orig string) string {
	enc := strings.ReplaceAll(strings.ToLower(orig[:min(len(orig), 12)]), "_", "-")
	switch {
	case enc == "utf-8" || strings.HasPrefix(enc, "utf-8-"):
		return UTF8
	case enc == "latin-1" || enc == "iso-8859-1" || enc == "iso-latin-1",
		strings.HasPrefix(enc, "latin-1-"), strings.HasPrefix(enc, "iso-8859-1-"), strings.HasPrefix(enc, "iso-latin-1-"):
		return "iso-8859-1"
	}
	return orig
}

// lookup resolves an encoding name to a codec
func lookup(name string) (codec, bool) {
	low := strings.ToLower(name)
	switch low {
	case UTF8, "utf8":
		return codec{}, true
	case UTF8BOM:
		return codec{bom: true}, true
	case Latin1, "iso-8859-1":
		return codec{enc: charmap.ISO8859_1}, true
	}
	if a, ok := aliases[low]; ok {
		low = a
	}
	if low == "us-ascii" {
		return codec{ascii: true}, true
	}
	if strings.HasPrefix(low, "cp") && len(low) == 6 {
		low = "windows-" + low[2:]
	}

	for _, cand := range []string{name, low, strings.ReplaceAll(low, "_", "-")} {
		e, err := ianaindex.IANA.Encoding(cand)
		if err == nil && e != nil {
			return codec{enc: e}, true
		}
	}
	return codec{}, false
}

func (c codec) decode(data []byte) (string, error) {
	if c.bom {
		data = bytes.TrimPrefix(data, bom)
	}
	switch {
	case c.ascii:
		for _, b := range data {
			if b >= utf8.RuneSelf {
				return "", perr.Encodingf("non-ascii byte %#x", b)
			}
		}
		return string(data), nil
	case c.enc == nil:
		if !utf8.Valid(data) {
			return "", perr.Encodingf("invalid utf-8")
		}
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeEncoding, "decode")
	}
	return string(out), nil
}

func (c codec) encode(text string) ([]byte, error) {
	switch {
	case c.ascii:
		for i := 0; i < len(text); i++ {
			if text[i] >= utf8.RuneSelf {
				return nil, perr.Encodingf("non-ascii text at byte %d", i)
			}
		}
		return []byte(text), nil
	case c.enc == nil && c.bom:
		return append(append([]byte{}, bom...), text...), nil
	case c.enc == nil:
		return []byte(text), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEncoding, "encode")
	}
	return out, nil
}
