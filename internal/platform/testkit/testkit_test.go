package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()

	MustNotPanic(t, func() {
		// no panic
	})
}

func TestMustContainAndEqual(t *testing.T) {
	t.Parallel()

	haystack := "alpha beta gamma"
	MustContain(t, haystack, "beta")
	MustEqual(t, haystack, "alpha beta gamma")
}

func TestWriteReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := WriteFile(t, dir, "pkg/sub/mod.py", "# x = 1\n")
	if !strings.HasPrefix(p, dir) || filepath.Base(p) != "mod.py" {
		t.Fatalf("unexpected path %q", p)
	}
	if got := ReadFile(t, p); got != "# x = 1\n" {
		t.Fatalf("ReadFile = %q", got)
	}
}

func TestMkdirHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"cache", ".git"} {
		p := MkdirHidden(t, dir, name)
		if !strings.HasPrefix(filepath.Base(p), ".") || strings.HasPrefix(filepath.Base(p), "..") {
			t.Fatalf("MkdirHidden(%q) = %q, want single dot prefix", name, p)
		}
		if st, err := os.Stat(p); err != nil || !st.IsDir() {
			t.Fatalf("MkdirHidden(%q) did not create a directory: %v", name, err)
		}
	}
}

var (
	addFn       = func(a, b int) int { return a + b }
	swapTargetI = 10
)

func TestSwap_FunctionAndRestore(t *testing.T) {
	// run swap in a subtest so Cleanup runs before we validate restoration
	t.Run("swap-in-subtest", func(t *testing.T) {
		Swap(t, &addFn, func(a, b int) int { return 99 })
		if got := addFn(1, 2); got != 99 {
			t.Fatalf("swap did not take effect, got %d want 99", got)
		}
	})

	if got := addFn(1, 2); got != 3 {
		t.Fatalf("swap did not restore original, got %d want 3", got)
	}
}

func TestSwap_NonFunctionType(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		Swap(t, &swapTargetI, 42)
		if swapTargetI != 42 {
			t.Fatalf("swap failed, got %d want 42", swapTargetI)
		}
	})
	if swapTargetI != 10 {
		t.Fatalf("swap did not restore original, got %d want 10", swapTargetI)
	}
}

func TestSerial_ReleasesOnCleanup(t *testing.T) {
	t.Run("first", func(t *testing.T) { Serial(t) })
	// would deadlock if the first subtest kept the lock
	t.Run("second", func(t *testing.T) { Serial(t) })
}
