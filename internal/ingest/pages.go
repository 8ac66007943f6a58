package ingest

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// PageFunc fetches one page and reports the dataset-wide total count.
type PageFunc[T any] func(ctx context.Context, page, rows int) ([]T, int, error)

// FetchReport summarizes how a paginated fetch went. PagesFailed pages
// were dropped; their items are simply absent from the result.
type FetchReport struct {
	TotalCount     int
	TotalPages     int
	PagesAttempted int
	PagesFailed    int
}

// FetchAllPages probes page 1 to learn the total, then fetches the
// remaining pages concurrently. Only the probe is fatal: every other
// page settles independently, failures are logged and skipped, and the
// join waits for all pages before returning the union of successes in
// page order. Page 1 items come from the probe and are never re-fetched.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], pageSize int) ([]T, FetchReport, error) {
	firstItems, totalCount, err := fetch(ctx, 1, pageSize)
	if err != nil {
		return nil, FetchReport{}, fmt.Errorf("probe page 1: %w", err)
	}

	report := FetchReport{TotalCount: totalCount}
	if totalCount == 0 {
		return nil, report, nil
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	report.TotalPages = totalPages
	report.PagesAttempted = totalPages

	if totalPages <= 1 {
		return firstItems, report, nil
	}

	type pageResult struct {
		items []T
		err   error
	}
	results := make([]pageResult, totalPages+1)

	var wg sync.WaitGroup
	for page := 2; page <= totalPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			items, _, err := fetch(ctx, page, pageSize)
			results[page] = pageResult{items: items, err: err}
		}(page)
	}
	wg.Wait()

	all := append([]T{}, firstItems...)
	for page := 2; page <= totalPages; page++ {
		if err := results[page].err; err != nil {
			log.Printf("failed to fetch page %d/%d: %v", page, totalPages, err)
			report.PagesFailed++
			continue
		}
		all = append(all, results[page].items...)
	}
	return all, report, nil
}
