package ingest

import (
	"context"
	"time"
)

// Pipeline names recorded on sync_runs rows.
const (
	PipelineCatalog    = "CATALOG"
	PipelineExhibition = "EXHIBITION"
)

// SyncRun is the bookkeeping row written for every ingestion run,
// finalized even when the run fails.
type SyncRun struct {
	ID           string
	Pipeline     string
	Status       string // RUNNING, COMPLETED, FAILED
	StartedAt    time.Time
	FinishedAt   *time.Time
	TotalFetched int
	UniqueCount  int
	Inserted     int
	Updated      int
	Errored      int
	Error        string
}

type RunRepository interface {
	CreateRun(ctx context.Context, run *SyncRun) (string, error)
	UpdateRun(ctx context.Context, run *SyncRun) error
}
