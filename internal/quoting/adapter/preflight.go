// internal/quoting/adapter/preflight.go
package adapter

import (
	"fmt"

	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/limits"
	"carrier-quoting/internal/quoting/outcome"
)

// Preflight runs the static appetite checks shared by every carrier and
// must be called before any network activity: an autodecline here costs
// no carrier API quota.
//
// On success it returns the carrier's best-fit limit tuple and a nil
// outcome. On an appetite mismatch it returns the terminal autodeclined
// outcome built from b.
func Preflight(app *models.Application, policy models.Policy, profile *models.CarrierProfile, b *outcome.Builder) (models.LimitTuple, *outcome.QuoteOutcome) {
	if !profile.SupportsEntityType(app.Business.EntityType) {
		o := b.Autodeclined(fmt.Sprintf("carrier does not write entity type %q", app.Business.EntityType))
		return models.LimitTuple{}, &o
	}

	matched, ok := limits.BestFit(policy.RequestedLimits, profile.SupportedLimits)
	if !ok {
		o := b.Autodeclined(fmt.Sprintf("no supported limits satisfy requested %s", policy.RequestedLimits))
		return models.LimitTuple{}, &o
	}

	return matched, nil
}

// OverrideTable injects carrier question codes the platform computes
// rather than asks: a "years in business" fact some carriers encode as a
// question id, state-mandated codes, and similar. Declarative data per
// carrier; the generic resolver stays free of carrier business logic.
type OverrideTable struct {
	Global  map[string]string
	ByState map[string]map[string]string
}

// For merges the global overrides with the state-specific ones, state
// winning on conflict.
func (t OverrideTable) For(state string) map[string]string {
	out := make(map[string]string, len(t.Global))
	for k, v := range t.Global {
		out[k] = v
	}
	for k, v := range t.ByState[state] {
		out[k] = v
	}
	return out
}
