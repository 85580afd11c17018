// internal/workers/quoting/get-carrier-quotes/models.go
package getcarrierquotes

import (
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/outcome"
)

// Input is the job variable payload: the normalized application plus an
// optional run id for idempotent re-delivery.
type Input struct {
	Application models.Application `json:"application"`
	RunID       string             `json:"runId,omitempty"`
}

// Output goes back to the workflow as job variables.
type Output struct {
	RunID    string                 `json:"runId"`
	Outcomes []outcome.QuoteOutcome `json:"outcomes"`
	// Summary maps canonical status to count, for gateway conditions in
	// the process model.
	Summary map[string]int `json:"summary"`
}
