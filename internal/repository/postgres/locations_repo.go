package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/repository"
)

type locationsRepo struct{ pool *pgxpool.Pool }

func NewLocations(pool *pgxpool.Pool) repository.Locations {
	return &locationsRepo{pool: pool}
}

const locationCols = `id, street, city, state, zip, latitude, longitude`

func scanLocation(row scanner) (models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.Street, &l.City, &l.State, &l.Zip, &l.Latitude, &l.Longitude)
	return l, mapErr(err)
}

func (r *locationsRepo) Create(ctx context.Context, l models.Location) (models.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx,
		`INSERT INTO locations (street, city, state, zip, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+locationCols,
		l.Street, l.City, l.State, l.Zip, l.Latitude, l.Longitude,
	))
}

func (r *locationsRepo) Get(ctx context.Context, id int64) (models.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationCols+` FROM locations WHERE id = $1`, id))
}

func (r *locationsRepo) List(ctx context.Context, f models.LocationFilter) ([]models.Location, error) {
	var p params
	var conds []string
	for col, v := range map[string]string{"street": f.Street, "city": f.City, "state": f.State, "zip": f.Zip} {
		if v != "" {
			conds = append(conds, col+" ILIKE "+p.bind(contains(v)))
		}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+locationCols+` FROM locations`+where(conds)+` ORDER BY id`, p.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *locationsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
