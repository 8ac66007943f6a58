package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"arthere/internal/config"
	"arthere/internal/museum"
	"arthere/internal/platform/opendata"
)

type ExhibitionFetcher interface {
	FetchPage(ctx context.Context, page, rows int) (opendata.ExhibitionPage, error)
}

// ExhibitionService runs the exhibition pipeline: paginated fetch, keep
// only ongoing exhibitions, group by venue, then merge-upsert one row
// per venue with a set union of exhibition IDs.
type ExhibitionService struct {
	fetcher    ExhibitionFetcher
	museums    museum.Repository
	runs       RunRepository
	serviceKey string
	pageSize   int
	today      func() string
}

func NewExhibitionService(fetcher ExhibitionFetcher, museums museum.Repository, runs RunRepository, serviceKey string, pageSize int) *ExhibitionService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &ExhibitionService{
		fetcher:    fetcher,
		museums:    museums,
		runs:       runs,
		serviceKey: serviceKey,
		pageSize:   pageSize,
		today:      func() string { return time.Now().Format("20060102") },
	}
}

type ExhibitionStats struct {
	Total    int `json:"total"`
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
	Errors   int `json:"errors"`
}

type ExhibitionResult struct {
	Message string
	Stats   ExhibitionStats
}

func (s *ExhibitionService) Run(ctx context.Context) (res ExhibitionResult, err error) {
	if s.serviceKey == "" {
		return res, &config.MissingVarError{Name: "EXHIBITION_API_KEY"}
	}

	run := &SyncRun{
		Pipeline:  PipelineExhibition,
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

	fetch := func(ctx context.Context, page, rows int) ([]opendata.ExhibitionItem, int, error) {
		p, err := s.fetcher.FetchPage(ctx, page, rows)
		return p.Items, p.TotalCount, err
	}

	items, report, err := FetchAllPages(ctx, fetch, s.pageSize)
	if err != nil {
		return res, err
	}
	if report.TotalCount == 0 {
		res.Message = "exhibition API returned no results"
		return res, nil
	}
	if report.PagesFailed > 0 {
		log.Printf("exhibition sync: %d/%d pages failed, continuing with partial data",
			report.PagesFailed, report.PagesAttempted)
	}

	venues := GroupExhibitionsByVenue(items, s.today())
	run.TotalFetched = len(items)
	run.UniqueCount = len(venues)
	log.Printf("exhibition sync: fetched=%d ongoing venues=%d", len(items), len(venues))

	for i := range venues {
		if wErr := s.writeVenue(ctx, run, &venues[i]); wErr != nil {
			log.Printf("exhibition sync: venue %q: %v", venues[i].Name, wErr)
			run.Errored++
		}
	}

	res.Stats = ExhibitionStats{
		Total:    run.TotalFetched,
		Updated:  run.Updated,
		Inserted: run.Inserted,
		Errors:   run.Errored,
	}
	res.Message = fmt.Sprintf("synced %d venues with ongoing exhibitions", len(venues))
	return res, nil
}

// writeVenue merge-upserts one venue. Existing exhibition IDs are only
// ever extended, and scalars an exhibition record does not carry are
// left alone so catalog data survives.
func (s *ExhibitionService) writeVenue(ctx context.Context, run *SyncRun, incoming *museum.Museum) error {
	existing, err := s.museums.GetByName(ctx, incoming.Name)
	if errors.Is(err, museum.ErrNotFound) {
		if err := s.museums.Insert(ctx, incoming); err != nil {
			return err
		}
		run.Inserted++
		return nil
	}
	if err != nil {
		return err
	}

	existing.ExhibitionIDs = museum.MergeExhibitionIDs(existing.ExhibitionIDs, incoming.ExhibitionIDs)
	if incoming.Address != "" {
		existing.Address = incoming.Address
	}
	if incoming.HomepageURL != "" {
		existing.HomepageURL = incoming.HomepageURL
	}
	if incoming.Latitude != nil {
		existing.Latitude = incoming.Latitude
	}
	if incoming.Longitude != nil {
		existing.Longitude = incoming.Longitude
	}

	if err := s.museums.Update(ctx, &existing); err != nil {
		return err
	}
	run.Updated++
	return nil
}
