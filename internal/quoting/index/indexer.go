// internal/quoting/index/indexer.go

// Package index persists quote outcomes to Elasticsearch so agents and
// support can search quoting history across carriers.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/quoting/outcome"

	"github.com/elastic/go-elasticsearch/v8"
)

// Indexer writes outcome documents to one index.
type Indexer struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(es *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{es: es, index: index, logger: log}
}

// document is the indexed shape: the outcome's public view plus the run
// identifiers used to query it back.
type document struct {
	ApplicationID string               `json:"applicationId"`
	RunID         string               `json:"runId"`
	Outcome       outcome.QuoteOutcome `json:"outcome"`
}

// IndexOutcome writes one outcome. The document id is deterministic per
// run and carrier, so a re-delivered job overwrites instead of
// duplicating.
func (ix *Indexer) IndexOutcome(ctx context.Context, applicationID, runID string, o outcome.QuoteOutcome) error {
	doc, err := json.Marshal(document{
		ApplicationID: applicationID,
		RunID:         runID,
		Outcome:       o,
	})
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}

	docID := fmt.Sprintf("%s-%s-%s", runID, o.CarrierID(), o.PolicyType())

	res, err := ix.es.Index(
		ix.index,
		bytes.NewReader(doc),
		ix.es.Index.WithContext(ctx),
		ix.es.Index.WithDocumentID(docID),
	)
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexWriteFailedError(fmt.Errorf("index %s returned %s", ix.index, res.Status()))
	}

	ix.logger.Debug("outcome indexed", map[string]interface{}{
		"applicationId": applicationID,
		"runId":         runID,
		"carrier":       o.CarrierID(),
		"docId":         docID,
	})
	return nil
}

// IndexAll writes every outcome of a run, collecting failures instead of
// stopping at the first: a search gap on one carrier must not hide the
// other carriers' history.
func (ix *Indexer) IndexAll(ctx context.Context, applicationID, runID string, outcomes []outcome.QuoteOutcome) error {
	var failed int
	var lastErr error
	for _, o := range outcomes {
		if err := ix.IndexOutcome(ctx, applicationID, runID, o); err != nil {
			failed++
			lastErr = err
			ix.logger.WithError(err).Error("outcome index write failed", map[string]interface{}{
				"applicationId": applicationID,
				"carrier":       o.CarrierID(),
			})
		}
	}
	if failed > 0 {
		return errors.NewIndexWriteFailedError(fmt.Errorf("%d of %d outcomes failed to index: %w", failed, len(outcomes), lastErr))
	}
	return nil
}
