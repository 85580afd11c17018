// internal/quoting/adapter/adapter.go

// Package adapter defines the contract every carrier plugin implements and
// the registry the orchestrator selects plugins from. New carriers add a
// registered factory and configuration data, not control flow.
package adapter

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/outcome"
	"carrier-quoting/internal/quoting/tokens"
	"carrier-quoting/internal/quoting/transport"
)

// CarrierAdapter is implemented once per carrier. One invocation of Quote
// produces exactly one QuoteOutcome; adapters never return ad hoc shapes
// and never let carrier faults escape as errors; classification is their
// whole job.
type CarrierAdapter interface {
	// CarrierID identifies the carrier, matching its profile and config.
	CarrierID() string

	// PolicyType is the line of business this adapter instance quotes.
	PolicyType() models.PolicyType

	// Quote builds the carrier request, calls the carrier, and reduces
	// the response to the canonical outcome. Static appetite mismatches
	// short-circuit before any network call.
	Quote(ctx context.Context, app *models.Application) outcome.QuoteOutcome

	// NormalizeStatus maps the carrier's raw status vocabulary onto the
	// canonical one. Required by contract so status mapping lives in one
	// reviewable place per carrier instead of scattered comparisons.
	NormalizeStatus(raw string) outcome.Status
}

// Dependencies carries the shared infrastructure injected into every
// adapter. Adapters own no retries and no shared mutable state.
type Dependencies struct {
	Transport *transport.Client
	Tokens    *tokens.Cache
	Logger    logger.Logger
	// Now allows tests to pin computed facts like years in business.
	Now func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Clock returns the dependency clock, defaulting to time.Now.
func (d Dependencies) Clock() time.Time { return d.now() }

// Factory builds one adapter bound to a carrier profile.
type Factory func(deps Dependencies, profile *models.CarrierProfile) CarrierAdapter

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register installs a carrier factory. Carrier packages call this from
// init; a duplicate id is a programming error.
func Register(carrierID string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[carrierID]; exists {
		panic(fmt.Sprintf("adapter: carrier %q registered twice", carrierID))
	}
	registry[carrierID] = f
}

// New builds the registered adapter for a profile.
func New(deps Dependencies, profile *models.CarrierProfile) (CarrierAdapter, error) {
	registryMu.RLock()
	f, ok := registry[profile.CarrierID]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("adapter: no carrier registered for %q", profile.CarrierID)
	}
	return f(deps, profile), nil
}

// Registered lists the known carrier ids, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
