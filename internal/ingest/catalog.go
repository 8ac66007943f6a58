package ingest

import (
	"context"
	"log"
	"time"

	"arthere/internal/config"
	"arthere/internal/museum"
	"arthere/internal/platform/opendata"
)

const defaultBatchSize = 50

type CatalogFetcher interface {
	FetchPage(ctx context.Context, page, rows int) (opendata.CatalogPage, error)
}

// CatalogService runs the museum catalog pipeline: paginated fetch,
// normalize, dedup by name, bulk upsert in fixed-size batches.
type CatalogService struct {
	fetcher    CatalogFetcher
	museums    museum.Repository
	runs       RunRepository
	serviceKey string
	pageSize   int
	batchSize  int
}

func NewCatalogService(fetcher CatalogFetcher, museums museum.Repository, runs RunRepository, serviceKey string, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CatalogService{
		fetcher:    fetcher,
		museums:    museums,
		runs:       runs,
		serviceKey: serviceKey,
		pageSize:   pageSize,
		batchSize:  defaultBatchSize,
	}
}

type CatalogResult struct {
	Total   int
	Unique  int
	Updated int
	Message string
}

func (s *CatalogService) Run(ctx context.Context) (res CatalogResult, err error) {
	if s.serviceKey == "" {
		return res, &config.MissingVarError{Name: "MUSEUM_API_KEY"}
	}

	run := &SyncRun{
		Pipeline:  PipelineCatalog,
		Status:    "RUNNING",
		StartedAt: time.Now(),
	}
	runID, rErr := s.runs.CreateRun(ctx, run)
	if rErr != nil {
		return res, rErr
	}
	run.ID = runID

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil && run.Error == "" {
			run.Error = err.Error()
		}
		if run.Error != "" {
			run.Status = "FAILED"
		} else {
			run.Status = "COMPLETED"
		}
		if updateErr := s.runs.UpdateRun(ctx, run); updateErr != nil {
			log.Printf("failed to update sync run %s: %v", run.ID, updateErr)
		}
	}()

	fetch := func(ctx context.Context, page, rows int) ([]opendata.CatalogItem, int, error) {
		p, err := s.fetcher.FetchPage(ctx, page, rows)
		return p.Items, p.TotalCount, err
	}

	items, report, err := FetchAllPages(ctx, fetch, s.pageSize)
	if err != nil {
		return res, err
	}
	if report.TotalCount == 0 {
		res.Message = "catalog API returned no museums"
		return res, nil
	}
	if report.PagesFailed > 0 {
		log.Printf("catalog sync: %d/%d pages failed, continuing with partial data",
			report.PagesFailed, report.PagesAttempted)
	}

	normalized := NormalizeCatalog(items)
	unique := DedupCatalog(normalized)

	run.TotalFetched = len(items)
	run.UniqueCount = len(unique)
	log.Printf("catalog sync: fetched=%d unique=%d", len(items), len(unique))

	for start := 0; start < len(unique); start += s.batchSize {
		end := min(start+s.batchSize, len(unique))
		batch := unique[start:end]

		affected, upErr := s.museums.BulkUpsert(ctx, batch)
		if upErr != nil {
			log.Printf("catalog sync: batch of %d failed: %v", len(batch), upErr)
			run.Errored += len(batch)
			continue
		}
		run.Updated += int(affected)
	}

	res.Total = run.TotalFetched
	res.Unique = run.UniqueCount
	res.Updated = run.Updated
	return res, nil
}
