// Package aggregator fans one validated search out to every requested
// source and merges the results into a single envelope.
package aggregator

import (
	"context"
	"sync"

	"jobgate/internal/config"
	"jobgate/internal/logging"
	"jobgate/internal/logging/types"
	"jobgate/internal/normalize"
	"jobgate/internal/scraper"
	"jobgate/internal/sources"
	"jobgate/pkg/models"
	"jobgate/pkg/utils"
)

// Aggregator orchestrates one search: a single batch-engine call for the
// library-backed sites plus one concurrent fetch per direct adapter.
type Aggregator struct {
	cfg      *config.Config
	engine   scraper.Engine
	registry *sources.Registry
	logger   types.Logger
}

// New creates an aggregator.
func New(cfg *config.Config, engine scraper.Engine, registry *sources.Registry) *Aggregator {
	return &Aggregator{
		cfg:      cfg,
		engine:   engine,
		registry: registry,
		logger:   logging.GetGlobalLogger(),
	}
}

type directResult struct {
	source  models.SourceID
	records []models.JobRecord
	err     error
}

// Run executes the search. Merge order is deterministic: batch-engine
// records first, then each direct source in request order. A failed direct
// source is logged and skipped; a failed batch call is fatal only when no
// direct source can still contribute.
func (a *Aggregator) Run(ctx context.Context, req *models.SearchRequest) (*models.Envelope, error) {
	library, direct := a.registry.Classify(req.Sources)

	// Indexed slots keep the merge order independent of completion order.
	results := make([]directResult, len(direct))
	var wg sync.WaitGroup

	for i, adapter := range direct {
		wg.Add(1)
		go func(slot int, adapter sources.Adapter) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.Upstream.RequestTimeout)
			defer cancel()

			records, err := adapter.Fetch(fetchCtx, req)
			results[slot] = directResult{source: adapter.Source(), records: records, err: err}
		}(i, adapter)
	}

	records := []models.JobRecord{}
	var queryEcho map[string]any

	if len(library) > 0 {
		params := scraper.BatchParamsFromRequest(req, library)
		queryEcho = params.Echo()

		batchCtx, cancel := context.WithTimeout(ctx, a.cfg.Jobspy.Timeout)
		rows, err := a.engine.ScrapeBatch(batchCtx, params)
		cancel()

		if err != nil {
			if len(direct) == 0 {
				wg.Wait()
				return nil, utils.NewScrapeFailedError(err, queryEcho)
			}
			a.logger.Warn("Batch engine failed, continuing with direct sources", map[string]interface{}{
				"sites": library,
				"error": err.Error(),
			})
		} else {
			for _, row := range rows {
				records = append(records, normalize.FromLibraryRow(row))
			}
		}
	}

	wg.Wait()

	for _, result := range results {
		if result.err != nil {
			a.logger.Warn("Direct source failed, skipping", map[string]interface{}{
				"source": result.source,
				"error":  result.err.Error(),
			})
			continue
		}
		records = append(records, result.records...)
	}

	if queryEcho == nil {
		queryEcho = req.EchoQuery()
	}

	return &models.Envelope{
		Jobs:  records,
		Count: len(records),
		Sites: req.Sources,
		Query: queryEcho,
	}, nil
}
