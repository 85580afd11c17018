// internal/quoting/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"testing"
	"time"

	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/outcome"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	id    string
	pt    models.PolicyType
	quote func(ctx context.Context, app *models.Application) outcome.QuoteOutcome
}

func (f *fakeAdapter) CarrierID() string                     { return f.id }
func (f *fakeAdapter) PolicyType() models.PolicyType         { return f.pt }
func (f *fakeAdapter) NormalizeStatus(string) outcome.Status { return outcome.StatusError }
func (f *fakeAdapter) Quote(ctx context.Context, app *models.Application) outcome.QuoteOutcome {
	return f.quote(ctx, app)
}

func quotedAdapter(id string) *fakeAdapter {
	return &fakeAdapter{
		id: id,
		pt: models.PolicyTypeGL,
		quote: func(context.Context, *models.Application) outcome.QuoteOutcome {
			return outcome.NewBuilder(id, models.PolicyTypeGL).
				Quoted("Q-"+id, models.LimitTuple{1000000, 2000000, 1000000}, 100000, nil)
		},
	}
}

func testApp() *models.Application {
	return &models.Application{ID: "app-1"}
}

func TestRun_CollectsAllOutcomesInOrder(t *testing.T) {
	o := New(logger.NewTestLogger(t))
	adapters := []adapter.CarrierAdapter{
		quotedAdapter("stonepoint"),
		quotedAdapter("harborline"),
		quotedAdapter("meridian"),
	}

	outcomes := o.Run(context.Background(), testApp(), adapters)

	require.Len(t, outcomes, 3)
	assert.Equal(t, "stonepoint", outcomes[0].CarrierID())
	assert.Equal(t, "harborline", outcomes[1].CarrierID())
	assert.Equal(t, "meridian", outcomes[2].CarrierID())
	for _, out := range outcomes {
		assert.Equal(t, outcome.StatusQuoted, out.Status())
	}
}

func TestRun_PanickingAdapterIsIsolated(t *testing.T) {
	o := New(logger.NewTestLogger(t))
	panicking := &fakeAdapter{
		id: "broken",
		pt: models.PolicyTypeBOP,
		quote: func(context.Context, *models.Application) outcome.QuoteOutcome {
			panic("nil map write in response mapping")
		},
	}
	adapters := []adapter.CarrierAdapter{
		quotedAdapter("stonepoint"),
		panicking,
		quotedAdapter("harborline"),
	}

	outcomes := o.Run(context.Background(), testApp(), adapters)

	require.Len(t, outcomes, 3)
	assert.Equal(t, outcome.StatusQuoted, outcomes[0].Status())
	assert.Equal(t, outcome.StatusQuoted, outcomes[2].Status())

	failed := outcomes[1]
	assert.Equal(t, "broken", failed.CarrierID())
	assert.Equal(t, outcome.StatusError, failed.Status())
	require.NotEmpty(t, failed.Reasons())
	assert.Contains(t, failed.Reasons()[0], "nil map write")
}

func TestRun_SlowAdapterDoesNotDisturbOthers(t *testing.T) {
	o := New(logger.NewNoOpLogger())
	slow := &fakeAdapter{
		id: "slow",
		pt: models.PolicyTypeWC,
		quote: func(ctx context.Context, _ *models.Application) outcome.QuoteOutcome {
			// Simulates the adapter's own timeout handling: the transport
			// bounds the call and the adapter reports error.
			time.Sleep(20 * time.Millisecond)
			return outcome.NewBuilder("slow", models.PolicyTypeWC).
				Error("carrier call exceeded timeout")
		},
	}

	outcomes := o.Run(context.Background(), testApp(), []adapter.CarrierAdapter{slow, quotedAdapter("stonepoint")})

	require.Len(t, outcomes, 2)
	assert.Equal(t, outcome.StatusError, outcomes[0].Status())
	assert.NotEmpty(t, outcomes[0].Reasons())
	assert.Equal(t, outcome.StatusQuoted, outcomes[1].Status())
}

func TestRun_NoAdapters(t *testing.T) {
	o := New(logger.NewNoOpLogger())
	outcomes := o.Run(context.Background(), testApp(), nil)
	assert.Empty(t, outcomes)
}
