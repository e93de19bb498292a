// Package modkit provides module wiring and core deps
package modkit

// Module is the common surface for modules that expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// Ports returns a module specific port set interface for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, ...) and may delegate to this pattern
type Builder func(Deps, ...Option) (Module, error)

// MustPortsOf returns the ports of m as T and panics on a wiring mismatch
func MustPortsOf[T any](m Module) T {
	p, ok := m.Ports().(T)
	if !ok {
		panic("modkit: unexpected ports type from module " + m.Name())
	}
	return p
}
