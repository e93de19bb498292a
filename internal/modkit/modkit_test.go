package modkit

import (
	"testing"

	kit "eradicate/internal/platform/testkit"
)

// stub module that satisfies Module
type stub struct {
	ports any
}

func (s *stub) Ports() any   { return s.ports }
func (s *stub) Name() string { return "stub" }

// compile-time assertion: stub implements Module
var _ Module = (*stub)(nil)

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	// A minimal Builder that ignores deps/options and returns a stub
	var b Builder = func(_ Deps, _ ...Option) (Module, error) {
		return &stub{ports: "ok"}, nil
	}
	m, err := b(Deps{})
	if err != nil || m == nil {
		t.Fatalf("builder failed: %v", err)
	}
	if p := m.Ports(); p != "ok" {
		t.Fatalf("unexpected Ports value from built module: got=%v want=ok", p)
	}
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()

	m := &stub{ports: 42}
	if got := MustPortsOf[int](m); got != 42 {
		t.Fatalf("MustPortsOf = %d, want 42", got)
	}
	kit.MustPanic(t, func() { _ = MustPortsOf[string](m) })
}
