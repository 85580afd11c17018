// internal/workers/quoting/get-carrier-quotes/handler.go

// Package getcarrierquotes is the external task worker that runs one
// quoting fan-out per job: it builds the adapters matching the requested
// policy types, runs them through the orchestrator, indexes the outcomes,
// and completes the job with the full outcome list.
package getcarrierquotes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"carrier-quoting/internal/common/camunda"
	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/index"
	"carrier-quoting/internal/quoting/orchestrator"
	"carrier-quoting/internal/quoting/outcome"
	"carrier-quoting/pkg/registry"
)

const TaskType = "get-carrier-quotes"

type Handler struct {
	config       *Config
	registry     *registry.Registry
	deps         adapter.Dependencies
	orchestrator *orchestrator.Orchestrator
	indexer      *index.Indexer
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(
	config *Config,
	reg *registry.Registry,
	deps adapter.Dependencies,
	orch *orchestrator.Orchestrator,
	indexer *index.Indexer,
	log logger.Logger,
) *Handler {
	return &Handler{
		config:       config,
		registry:     reg,
		deps:         deps,
		orchestrator: orch,
		indexer:      indexer,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job,
			errors.NewQuoteInputInvalidError(fmt.Sprintf("parse job variables: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

// Execute runs one quoting fan-out. A carrier failing to quote is a
// business result inside the output, not an error; only input and
// infrastructure failures return an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if stdErr := validateInput(input); stdErr != nil {
		return nil, stdErr
	}

	runID := input.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	adapters := h.buildAdapters(input)
	if len(adapters) == 0 {
		return nil, errors.NewQuoteInputInvalidError(
			"no enabled carrier writes any of the requested policy types")
	}

	outcomes := h.orchestrator.Run(ctx, &input.Application, adapters)

	if h.indexer != nil {
		if err := h.indexer.IndexAll(ctx, input.Application.ID, runID, outcomes); err != nil {
			return nil, err
		}
	}

	return &Output{
		RunID:    runID,
		Outcomes: outcomes,
		Summary:  summarize(outcomes),
	}, nil
}

// buildAdapters instantiates one adapter per enabled profile matching a
// requested policy type. A profile whose carrier has no registered plugin
// is a deployment gap: logged and skipped, never fatal to the run.
func (h *Handler) buildAdapters(input *Input) []adapter.CarrierAdapter {
	var adapters []adapter.CarrierAdapter
	for _, policy := range input.Application.Policies {
		for _, profile := range h.registry.ProfilesFor(policy.Type) {
			a, err := adapter.New(h.deps, profile)
			if err != nil {
				h.logger.Error("carrier profile has no registered adapter", map[string]interface{}{
					"carrier":    profile.CarrierID,
					"policyType": string(profile.PolicyType),
				})
				continue
			}
			adapters = append(adapters, a)
		}
	}
	return adapters
}

func summarize(outcomes []outcome.QuoteOutcome) map[string]int {
	out := make(map[string]int, len(outcomes))
	for _, o := range outcomes {
		out[string(o.Status())]++
	}
	return out
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.WithError(err).Error("failed to create complete job command", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.RequestTimeout)
	defer cancel()

	_, err = camunda.ExecuteWithRetry(ctx, camunda.DefaultRetryConfig, func(ctx context.Context) (interface{}, error) {
		return cmd.Send(ctx)
	}, "complete quote job")
	if err != nil {
		h.logger.WithError(err).Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.Key,
		"runId":    output.RunID,
		"outcomes": len(output.Outcomes),
	})
}
