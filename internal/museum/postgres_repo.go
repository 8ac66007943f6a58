package museum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Museum, error) {
	const query = `
		SELECT id, name, address, homepage_url, latitude, longitude, reference_date, exhibition_ids, last_updated
		FROM museums
		WHERE name = $1`

	var m Museum
	err := r.db.QueryRow(ctx, query, name).Scan(
		&m.ID, &m.Name, &m.Address, &m.HomepageURL,
		&m.Latitude, &m.Longitude, &m.ReferenceDate, &m.ExhibitionIDs, &m.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Museum{}, ErrNotFound
		}
		return Museum{}, err
	}
	return m, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, m *Museum) error {
	const sql = `
		INSERT INTO museums (name, address, homepage_url, latitude, longitude, reference_date, exhibition_ids, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (name) DO UPDATE SET
			address = EXCLUDED.address,
			homepage_url = EXCLUDED.homepage_url,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			exhibition_ids = EXCLUDED.exhibition_ids,
			last_updated = now()
		RETURNING id`

	ids := m.ExhibitionIDs
	if ids == nil {
		ids = []string{}
	}
	err := r.db.QueryRow(ctx, sql,
		m.Name, m.Address, m.HomepageURL, m.Latitude, m.Longitude, m.ReferenceDate, ids,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert museum %q: %w", m.Name, err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, m *Museum) error {
	const sql = `
		UPDATE museums SET
			address = $1,
			homepage_url = $2,
			latitude = $3,
			longitude = $4,
			exhibition_ids = $5,
			last_updated = now()
		WHERE id = $6`

	ids := m.ExhibitionIDs
	if ids == nil {
		ids = []string{}
	}
	tag, err := r.db.Exec(ctx, sql, m.Address, m.HomepageURL, m.Latitude, m.Longitude, ids, m.ID)
	if err != nil {
		return fmt.Errorf("update museum %q: %w", m.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpsert writes one batch with a single multi-row statement. Scalar
// fields are overwritten on conflict; exhibition_ids is left untouched so
// the catalog pipeline never clobbers what the exhibition pipeline wrote.
func (r *PostgresRepo) BulkUpsert(ctx context.Context, batch []Museum) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*6)
	argn := 1
	for _, m := range batch {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, now())",
			argn, argn+1, argn+2, argn+3, argn+4, argn+5))
		args = append(args, m.Name, m.Address, m.HomepageURL, m.Latitude, m.Longitude, m.ReferenceDate)
		argn += 6
	}

	sql := fmt.Sprintf(`
		INSERT INTO museums (name, address, homepage_url, latitude, longitude, reference_date, last_updated)
		VALUES %s
		ON CONFLICT (name) DO UPDATE SET
			address = EXCLUDED.address,
			homepage_url = EXCLUDED.homepage_url,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			reference_date = EXCLUDED.reference_date,
			last_updated = now()`,
		strings.Join(values, ", "))

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk upsert %d museums: %w", len(batch), err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepo) List(ctx context.Context, limit, offset int) ([]Museum, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM museums").Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
		SELECT id, name, address, homepage_url, latitude, longitude, reference_date, exhibition_ids, last_updated
		FROM museums
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Museum
	for rows.Next() {
		var m Museum
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Address, &m.HomepageURL,
			&m.Latitude, &m.Longitude, &m.ReferenceDate, &m.ExhibitionIDs, &m.LastUpdated,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}
