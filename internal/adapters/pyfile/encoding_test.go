package pyfile

import "testing"

func TestDetectEncoding(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"default", "x = 1\n", UTF8},
		{"empty", "", UTF8},
		{"bad cookie", "# -*- coding: blah -*-\n", Latin1},
		{"latin-1 cookie", "# -*- coding: latin-1 -*-\nx = '\xe9'\n", "iso-8859-1"},
		{"iso spelling", "# coding=ISO_8859_1\n", "iso-8859-1"},
		{"utf8 spelling", "# coding: UTF_8\n", UTF8},
		{"vim cookie", "# vim: set fileencoding=cp1252 :\n", "cp1252"},
		{"second line", "#!/usr/bin/env python\n# -*- coding: latin-1 -*-\n", "iso-8859-1"},
		{"second line after code", "x = 1\n# -*- coding: latin-1 -*-\n", UTF8},
		{"third line ignored", "#\n#\n# coding: blah\n", UTF8},
		{"bom", "\xef\xbb\xbfx = 1\n", UTF8BOM},
		{"bom with utf-8 cookie", "\xef\xbb\xbf# coding: utf-8\n", UTF8BOM},
		{"bom with other cookie", "\xef\xbb\xbf# coding: latin-1\n", Latin1},
		{"invalid utf-8", "x = '\xff'\n", Latin1},
		{"ascii", "# coding: ascii\nx = 1\n", "ascii"},
		{"ascii violated", "# coding: ascii\nx = '\xe9'\n", Latin1},
	}
	for _, c := range cases {
		if got := DetectEncoding([]byte(c.data)); got != c.want {
			t.Fatalf("%s: DetectEncoding = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, name := range []string{UTF8, UTF8BOM, Latin1, "iso-8859-1", "cp1252", "ascii", "shift_jis"} {
		c, ok := lookup(name)
		if !ok {
			t.Fatalf("lookup(%q) failed", name)
		}
		data, err := c.encode("x = 1\n")
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		text, err := c.decode(data)
		if err != nil || text != "x = 1\n" {
			t.Fatalf("%s: decode = %q, %v", name, text, err)
		}
	}
	if _, ok := lookup("no-such-codec"); ok {
		t.Fatalf("unknown codec resolved")
	}
}

func TestCodec_ASCIIRejectsWide(t *testing.T) {
	c, _ := lookup("ascii")
	if _, err := c.encode("é"); err == nil {
		t.Fatalf("ascii encode should fail for non-ascii text")
	}
}
