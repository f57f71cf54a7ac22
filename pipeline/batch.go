package pipeline

import (
	"context"
	"sync"

	"github.com/docuseek/nlq/core"
)

// BatchItem is the outcome of one query in a batch.
type BatchItem struct {
	Query  string
	Result *core.ProcessingResult
	Err    error
}

// ProcessQueryBatch runs many queries and returns their outcomes in
// input order. Under aggressive mode the batch is processed in fixed
// chunks to bound the fan-out against the search collaborator; basic
// mode processes the whole batch concurrently through the work queue.
func (o *Orchestrator) ProcessQueryBatch(ctx context.Context, queries []string, opts ProcessOptions) []BatchItem {
	items := make([]BatchItem, len(queries))
	for i, q := range queries {
		items[i].Query = q
	}

	chunk := len(queries)
	if o.Config().PerformanceOptimization == PerformanceAggressive && chunk > batchChunkSize {
		chunk = batchChunkSize
	}
	if chunk == 0 {
		return items
	}

	for start := 0; start < len(queries); start += chunk {
		end := start + chunk
		if end > len(queries) {
			end = len(queries)
		}
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				items[i].Result, items[i].Err = o.ProcessQuery(ctx, queries[i], opts)
			}(i)
		}
		wg.Wait()
	}
	return items
}
