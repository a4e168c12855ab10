package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
)

const (
	defaultImportWorkers = 4
	maxImportWorkers     = 32

	ImportStatusCreated = "created"
	ImportStatusFailed  = "failed"
)

// RecordCreator is the part of the store a bulk import needs.
type RecordCreator interface {
	Create(ctx context.Context, input playerstats.Input) (playerstats.Record, error)
}

type ImportItemResult struct {
	Index      int    `json:"index"`
	ID         string `json:"id,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type ImportResult struct {
	Items        []ImportItemResult `json:"items"`
	CreatedCount int                `json:"createdCount"`
	FailedCount  int                `json:"failedCount"`
}

// ImportRecords creates every input through creator on a bounded worker pool. A failed item
// does not stop the others; items are reported in input order.
func ImportRecords(ctx context.Context, creator RecordCreator, inputs []playerstats.Input, workerCount int) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportRecords")
	defer span.End()

	if workerCount <= 0 {
		workerCount = defaultImportWorkers
	}
	if workerCount > maxImportWorkers {
		workerCount = maxImportWorkers
	}
	if len(inputs) == 0 {
		return ImportResult{Items: []ImportItemResult{}}, nil
	}

	results := make(chan ImportItemResult, len(inputs))

	var createdCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for index, input := range inputs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ImportItemResult{Index: index}

			record, err := creator.Create(ctx, input)
			if err != nil {
				row.Status = ImportStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = ImportStatusCreated
				row.ID = record.ID
				createdCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return ImportResult{}, fmt.Errorf("submit import item %d to worker pool: %w", index, err)
		}
	}

	workers.Wait()
	close(results)

	out := ImportResult{Items: make([]ImportItemResult, 0, len(inputs))}
	for row := range results {
		out.Items = append(out.Items, row)
	}
	sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].Index < out.Items[j].Index })

	out.CreatedCount = int(createdCount.Load())
	out.FailedCount = int(failedCount.Load())
	return out, nil
}
