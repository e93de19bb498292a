// Package module implements the eradicate module
package module

import (
	"eradicate/internal/core/scan"
	"eradicate/internal/modkit"
	"eradicate/internal/platform/validate"
	"eradicate/internal/services/eradicate/domain"
	"eradicate/internal/services/eradicate/service"
)

// Ports exposed by the eradicate module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	opts  domain.Options
	ports Ports
}

// New validates opts and wires the runner. Streams are injected with modkit.WithPorts(domain.Streams{...})
func New(deps modkit.Deps, opts domain.Options, mopts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("eradicate"),
	}, mopts...)...)

	// guardrails against incorrect wiring
	streams, ok := b.Ports.(domain.Streams)
	if !ok {
		panic("eradicate module: expected WithPorts(eradicate/domain.Streams)")
	}
	if streams.Stdout == nil {
		panic("eradicate module: Streams missing Stdout")
	}

	if len(opts.Extensions) == 0 {
		opts.Extensions = FromConfig(deps.Cfg).Extensions
	}
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}

	if deps.Log != nil {
		deps.Log.Debug().
			Str("module", b.Name).
			Int("jobs", opts.Jobs).
			Bool("in_place", opts.InPlace).
			Bool("recursive", opts.Recursive).
			Strs("extensions", opts.Extensions).
			Msg("module ready")
	}

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{
		Runner: service.New(scan.Default(), opts, streams),
	}
	return m, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "eradicate" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Options returns the validated options the runner was built with
func (m *Module) Options() domain.Options { return m.opts }
