package config

import (
	"testing"

	kit "eradicate/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	app := root.Prefix("ERADICATE_")
	if got := app.key("JOBS"); got != "ERADICATE_JOBS" {
		t.Fatalf("key() = %q, want %q", got, "ERADICATE_JOBS")
	}
	// nested prefix
	nested := app.Prefix("SCAN_")
	if got := nested.key("LIMIT"); got != "ERADICATE_SCAN_LIMIT" {
		t.Fatalf("nested key() = %q, want %q", got, "ERADICATE_SCAN_LIMIT")
	}
}

// Must* panics

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  eradicate ")
	if got := c.MustString("NAME"); got != "eradicate" {
		t.Fatalf("MustString = %q, want %q", got, "eradicate")
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SVC_")
	t.Setenv("SVC_JOBS", "  8 ")
	if got := c.MustInt("JOBS"); got != 8 {
		t.Fatalf("MustInt = %d, want %d", got, 8)
	}
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })
	t.Setenv("SVC_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

// May* fallbacks

func TestMayString(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_COLOR", " always ")
	if got := c.MayString("COLOR", "never"); got != "always" {
		t.Fatalf("MayString = %q, want always", got)
	}
	if got := c.MayString("MISSING", "never"); got != "never" {
		t.Fatalf("MayString default = %q, want never", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_JOBS", "4")
	t.Setenv("M_BAD", "four")
	if got := c.MayInt("JOBS", 1); got != 4 {
		t.Fatalf("MayInt = %d, want 4", got)
	}
	if got := c.MayInt("BAD", 1); got != 1 {
		t.Fatalf("MayInt invalid = %d, want 1", got)
	}
	if got := c.MayInt("MISSING", 1); got != 1 {
		t.Fatalf("MayInt missing = %d, want 1", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_ON", "true")
	t.Setenv("M_BAD", "maybe")
	if !c.MayBool("ON", false) {
		t.Fatalf("MayBool(ON) = false, want true")
	}
	if !c.MayBool("BAD", true) {
		t.Fatalf("MayBool(BAD) should return default true")
	}
	if c.MayBool("MISSING", false) {
		t.Fatalf("MayBool(MISSING) should return default false")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_EXT", " .py, .pyw ,, ")
	t.Setenv("M_EMPTY", " , ,")

	got := c.MayCSV("EXT", []string{".x"})
	if len(got) != 2 || got[0] != ".py" || got[1] != ".pyw" {
		t.Fatalf("MayCSV = %#v", got)
	}
	if got := c.MayCSV("EMPTY", []string{".x"}); len(got) != 1 || got[0] != ".x" {
		t.Fatalf("MayCSV all-blank should return default, got %#v", got)
	}
	if got := c.MayCSV("MISSING", nil); got != nil {
		t.Fatalf("MayCSV missing should return nil default, got %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_COLOR", "ALWAYS")
	t.Setenv("M_BAD", "sometimes")

	if got := c.MayEnum("COLOR", "never", "auto", "always", "never"); got != "always" {
		t.Fatalf("MayEnum = %q, want always", got)
	}
	if got := c.MayEnum("BAD", "never", "auto", "always", "never"); got != "never" {
		t.Fatalf("MayEnum invalid = %q, want never", got)
	}
	if got := c.MayEnum("MISSING", "auto", "auto", "always", "never"); got != "auto" {
		t.Fatalf("MayEnum missing = %q, want auto", got)
	}
}
