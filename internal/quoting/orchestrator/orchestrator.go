// internal/quoting/orchestrator/orchestrator.go

// Package orchestrator fans one application out to every selected carrier
// adapter and collects the outcomes. Isolation is the contract: one
// carrier's failure never aborts quoting for the rest.
package orchestrator

import (
	"context"
	"fmt"

	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/common/metrics"
	"carrier-quoting/internal/common/observability"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/outcome"

	"golang.org/x/sync/errgroup"
)

type Orchestrator struct {
	logger logger.Logger
}

func New(log logger.Logger) *Orchestrator {
	return &Orchestrator{logger: log}
}

// Run invokes every adapter concurrently and returns one outcome per
// adapter, ordered to match the input slice. Adapters are independent and
// I/O-bound; nothing is shared between them but read-only inputs. A panic
// inside an adapter is recovered into that adapter's error outcome.
//
// Run waits for every adapter (fan-out/fan-in); individual calls are
// bounded by the transport timeout, not cancelled by their siblings.
func (o *Orchestrator) Run(ctx context.Context, app *models.Application, adapters []adapter.CarrierAdapter) []outcome.QuoteOutcome {
	runCtx, span := observability.StartQuoteRun(ctx, app.ID, len(adapters))
	defer span.End()

	metrics.QuoteRunsActive.Inc()
	defer metrics.QuoteRunsActive.Dec()

	o.logger.Info("quote run started", map[string]interface{}{
		"applicationId": app.ID,
		"adapters":      len(adapters),
	})

	outcomes := make([]outcome.QuoteOutcome, len(adapters))
	var g errgroup.Group
	for i, a := range adapters {
		i, a := i, a
		g.Go(func() error {
			outcomes[i] = o.invoke(runCtx, app, a)
			return nil
		})
	}
	_ = g.Wait()

	for _, out := range outcomes {
		metrics.QuoteOutcomes.WithLabelValues(out.CarrierID(), string(out.PolicyType()), string(out.Status())).Inc()
	}

	o.logger.Info("quote run completed", map[string]interface{}{
		"applicationId": app.ID,
		"outcomes":      summarize(outcomes),
	})

	return outcomes
}

// invoke runs one adapter, converting panics into that adapter's error
// outcome so the isolation invariant holds.
func (o *Orchestrator) invoke(ctx context.Context, app *models.Application, a adapter.CarrierAdapter) (out outcome.QuoteOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("adapter panicked", map[string]interface{}{
				"carrier":       a.CarrierID(),
				"policyType":    a.PolicyType(),
				"applicationId": app.ID,
				"panic":         fmt.Sprint(r),
			})
			out = outcome.NewBuilder(a.CarrierID(), a.PolicyType()).
				Error(fmt.Sprintf("adapter failure: %v", r))
		}
	}()
	return a.Quote(ctx, app)
}

func summarize(outcomes []outcome.QuoteOutcome) map[string]int {
	counts := make(map[string]int, len(outcomes))
	for _, out := range outcomes {
		counts[string(out.Status())]++
	}
	return counts
}
