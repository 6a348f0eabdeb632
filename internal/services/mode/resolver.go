// Package mode decides, per request, whether a flow runs against the live
// gateway or the mock generator, and what happens when a live call fails.
package mode

import (
	"cardvault/internal/config"
	"cardvault/internal/errors"
)

// Flow classifies the caller. Vaulting and charging react differently to
// live gateway failures.
type Flow int

const (
	FlowVaulting Flow = iota
	FlowCharge
)

func (f Flow) String() string {
	if f == FlowCharge {
		return "charge"
	}
	return "vaulting"
}

// Path is the transaction-resolution route a request takes.
type Path int

const (
	PathMock Path = iota
	PathLive
)

// Resolver applies the mode decision table:
//
//	mock flag on                  -> mock path, gateway never touched
//	mock flag off, no credentials -> CONFIGURATION_ERROR, nothing attempted
//	mock flag off, credentials    -> live path
//
// On a live failure, vaulting falls back to the mock path so the caller
// still ends up with a usable vaulted card; charging propagates the
// failure so a charge is never silently reported as successful.
type Resolver struct {
	toggle  *Toggle
	gateway config.GatewayConfig
}

func NewResolver(toggle *Toggle, gateway config.GatewayConfig) *Resolver {
	if toggle == nil {
		panic("toggle is required")
	}
	return &Resolver{toggle: toggle, gateway: gateway}
}

// Resolve picks the path for one request. The returned error is the
// fail-fast configuration error; no fallback applies to it.
func (r *Resolver) Resolve(flow Flow) (Path, error) {
	if r.toggle.Enabled() {
		return PathMock, nil
	}
	if !r.gateway.Configured() {
		return PathMock, errors.ErrGatewayNotConfigured
	}
	return PathLive, nil
}

// FallsBackToMock reports whether a live failure for the flow is recovered
// by the mock path instead of surfacing to the caller.
func (r *Resolver) FallsBackToMock(flow Flow) bool {
	return flow == FlowVaulting
}

// Toggle exposes the underlying switch for the toggle endpoint.
func (r *Resolver) Toggle() *Toggle {
	return r.toggle
}
