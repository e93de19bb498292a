package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	kit "eradicate/internal/platform/testkit"
)

const twoLines = "# x * 3 == False\n# x is a variable\n"

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("ERADICATE_JOBS", "")
	t.Setenv("ERADICATE_COLOR", "")
	t.Setenv("ERADICATE_EXTENSIONS", "")
	var out, errw bytes.Buffer
	code = Run(context.Background(), args, &out, &errw)
	return code, out.String(), errw.String()
}

func TestRun_Diff(t *testing.T) {
	p := kit.WriteFile(t, t.TempDir(), "a.py", twoLines)

	code, out, _ := run(t, p)
	if code != ExitOK {
		t.Fatalf("exit = %d", code)
	}
	kit.MustEqual(t, out, "--- before/"+p+"\n+++ after/"+p+"\n@@ -1,2 +1 @@\n-# x * 3 == False\n # x is a variable\n")
}

func TestRun_Recursive(t *testing.T) {
	dir := t.TempDir()
	kit.WriteFile(t, dir, "a.py", twoLines)

	_, out, _ := run(t, "--recursive", dir)
	kit.MustContain(t, out, "@@ -1,2 +1 @@\n-# x * 3 == False\n # x is a variable\n")

	_, out, _ = run(t, dir)
	if out != "" {
		t.Fatalf("directory without --recursive should produce nothing, got %q", out)
	}
}

func TestRun_RecursiveSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	hidden := kit.MkdirHidden(t, dir, "hidden")
	kit.WriteFile(t, hidden, "a.py", twoLines)

	_, out, _ := run(t, "-r", dir)
	if out != "" {
		t.Fatalf("hidden directory was scanned: %q", out)
	}
}

func TestRun_InPlace(t *testing.T) {
	p := kit.WriteFile(t, t.TempDir(), "a.py", twoLines)

	code, out, _ := run(t, "--in-place", p)
	if code != ExitOK || out != "" {
		t.Fatalf("exit = %d, stdout = %q", code, out)
	}
	kit.MustEqual(t, kit.ReadFile(t, p), "# x is a variable\n")
}

func TestRun_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "fake.py")

	code, out, errw := run(t, missing)
	if code != ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if out != "" {
		t.Fatalf("unexpected stdout: %q", out)
	}
	kit.MustContain(t, errw, missing)
}

func TestRun_Jobs(t *testing.T) {
	dir := t.TempDir()
	a := kit.WriteFile(t, dir, "a.py", twoLines)
	b := kit.WriteFile(t, dir, "b.py", twoLines)

	_, out, _ := run(t, "-j", "4", b, a)
	if strings.Index(out, b) > strings.Index(out, a) {
		t.Fatalf("output not in argument order:\n%s", out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no paths", nil, "Usage: eradicate"},
		{"unknown flag", []string{"--nope", "x.py"}, "unknown flag"},
		{"jobs zero", []string{"-j", "0", "x.py"}, "jobs must be at least 1"},
		{"colour", []string{"--color", "rainbow", "x.py"}, "color must be one of"},
		{"extension", []string{"-e", "py", "x.py"}, "must start with ."},
	}
	for _, c := range cases {
		code, out, errw := run(t, c.args...)
		if code != ExitUsage {
			t.Fatalf("%s: exit = %d, want %d", c.name, code, ExitUsage)
		}
		if out != "" {
			t.Fatalf("%s: unexpected stdout %q", c.name, out)
		}
		kit.MustContain(t, errw, c.want)
	}
}

func TestRun_EnvDefaults(t *testing.T) {
	p := kit.WriteFile(t, t.TempDir(), "a.py", twoLines)

	var out, errw bytes.Buffer
	t.Setenv("ERADICATE_JOBS", "0")
	if code := Run(context.Background(), []string{p}, &out, &errw); code != ExitUsage {
		t.Fatalf("env jobs=0 should fail validation, exit = %d", code)
	}
	// flags override env
	if code := Run(context.Background(), []string{"-j", "2", p}, &out, &errw); code != ExitOK {
		t.Fatalf("flag should override env, exit = %d (%s)", code, errw.String())
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, _, errw := run(t, "-h")
	if code != ExitOK {
		t.Fatalf("help exit = %d", code)
	}
	kit.MustContain(t, errw, "--in-place")

	code, out, _ := run(t, "--version")
	if code != ExitOK {
		t.Fatalf("version exit = %d", code)
	}
	kit.MustContain(t, out, "eradicate dev")
}

func TestRun_Cancelled(t *testing.T) {
	p := kit.WriteFile(t, t.TempDir(), "a.py", twoLines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errw bytes.Buffer
	if code := Run(ctx, []string{p}, &out, &errw); code != ExitRun {
		t.Fatalf("exit = %d, want %d", code, ExitRun)
	}
}
