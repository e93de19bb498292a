package raw

import (
	"testing"
)

// Test Get with prefixing and trimming
func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " eradicate ")
	t.Setenv("LOG_LEVEL", " info ")

	root := New()
	log := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root no default used", conf: root, key: "APP_NAME", def: "x", want: "eradicate"},
		{name: "prefixed hit", conf: log, key: "LEVEL", def: "x", want: "info"},
		{name: "missing returns default", conf: log, key: "MISSING", def: "defv", want: "defv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.conf.Get(tt.key, tt.def)
			if got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfHas(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_SET", "x")
	t.Setenv("LOG_BLANK", "   ")

	if !c.Has("SET") {
		t.Fatalf("Has(SET) = false, want true")
	}
	if c.Has("BLANK") {
		t.Fatalf("Has(BLANK) = true, want false")
	}
	if c.Has("UNSET_FOR_SURE") {
		t.Fatalf("Has(UNSET_FOR_SURE) = true, want false")
	}
}

// Test GetBool with truthy and falsy variants and defaults
func TestConfGetBool(t *testing.T) {
	c := New().Prefix("LOG_")

	t.Setenv("LOG_T1", "true")
	t.Setenv("LOG_T2", "1")
	t.Setenv("LOG_T3", "YES")
	t.Setenv("LOG_T4", " on ")
	t.Setenv("LOG_F1", "false")
	t.Setenv("LOG_F2", "0")
	t.Setenv("LOG_F3", "nope")

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"T4", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"F3", true, false},
		{"MISSING", true, true},
		{"MISSING", false, false},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_N", " 42 ")
	t.Setenv("LOG_BAD", "4x")
	t.Setenv("LOG_NEG", "-3")

	if got := c.GetInt("N", 7); got != 42 {
		t.Fatalf("GetInt(N) = %d, want 42", got)
	}
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("GetInt(BAD) = %d, want 7", got)
	}
	if got := c.GetInt("NEG", 7); got != 7 {
		t.Fatalf("GetInt(NEG) = %d, want 7", got)
	}
	if got := c.GetInt("MISSING", 7); got != 7 {
		t.Fatalf("GetInt(MISSING) = %d, want 7", got)
	}
}

func TestConfGetOneOf(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", " JSON ")
	t.Setenv("LOG_OTHER", "xml")

	if got := c.GetOneOf("FORMAT", "console", "console", "json"); got != "json" {
		t.Fatalf("GetOneOf(FORMAT) = %q, want json", got)
	}
	if got := c.GetOneOf("OTHER", "console", "console", "json"); got != "console" {
		t.Fatalf("GetOneOf(OTHER) = %q, want console", got)
	}
	if got := c.GetOneOf("MISSING", "console", "console", "json"); got != "console" {
		t.Fatalf("GetOneOf(MISSING) = %q, want console", got)
	}
}
