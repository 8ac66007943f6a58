package ingest

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *SyncRun) (string, error) {
	const sql = `
		INSERT INTO sync_runs (pipeline, status)
		VALUES ($1, $2)
		RETURNING id`

	var id string
	err := r.db.QueryRow(ctx, sql, run.Pipeline, run.Status).Scan(&id)
	return id, err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *SyncRun) error {
	const sql = `
		UPDATE sync_runs SET
			finished_at = $1,
			status = $2,
			total_fetched = $3,
			unique_count = $4,
			inserted = $5,
			updated = $6,
			errored = $7,
			error = $8
		WHERE id = $9`

	_, err := r.db.Exec(ctx, sql,
		run.FinishedAt, run.Status, run.TotalFetched, run.UniqueCount,
		run.Inserted, run.Updated, run.Errored, run.Error, run.ID)
	return err
}
