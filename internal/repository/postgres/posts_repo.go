package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/repository"
)

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts {
	return &postsRepo{pool: pool}
}

const postCols = `p.id, p.poster_username, p.item_id, p.location_id, p.posted_at`

func scanPost(row scanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.PosterUsername, &p.ItemID, &p.LocationID, &p.PostedAt)
	return p, mapErr(err)
}

func (r *postsRepo) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE item_id = $1)`, itemID).Scan(&exists)
	return exists, err
}

func (r *postsRepo) Create(ctx context.Context, poster string, itemID, locationID int64) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (poster_username, item_id, location_id)
		 SELECT $1::text, i.id, $3::bigint
		   FROM items i
		  WHERE i.id = $2 AND i.owner_username = $1::text
		 RETURNING id, poster_username, item_id, location_id`,
		poster, itemID, locationID,
	).Scan(&p.ID, &p.PosterUsername, &p.ItemID, &p.LocationID)
	return p, mapErr(err)
}

func (r *postsRepo) Get(ctx context.Context, id int64) (models.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postCols+` FROM posts p WHERE p.id = $1`, id))
}

func (r *postsRepo) List(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	var p params
	var conds []string
	if f.ItemName != "" {
		conds = append(conds, "i.title ILIKE "+p.bind(contains(f.ItemName)))
	}
	if f.PosterUsername != "" {
		conds = append(conds, "p.poster_username ILIKE "+p.bind(contains(f.PosterUsername)))
	}
	if f.MinRating != nil {
		conds = append(conds, "u.rating >= "+p.bind(*f.MinRating))
	}

	return r.list(ctx,
		`SELECT `+postCols+`
		   FROM posts p
		   JOIN items i ON i.id = p.item_id
		   JOIN users u ON u.username = p.poster_username`+where(conds)+`
		  ORDER BY p.posted_at DESC, p.id DESC`,
		p.args...)
}

func (r *postsRepo) ListByPoster(ctx context.Context, poster string) ([]models.Post, error) {
	return r.list(ctx,
		`SELECT `+postCols+` FROM posts p WHERE p.poster_username = $1 ORDER BY p.posted_at DESC, p.id DESC`,
		poster)
}

func (r *postsRepo) list(ctx context.Context, q string, args ...any) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) UpdateLocation(ctx context.Context, id int64, poster string, locationID int64) (models.Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`UPDATE posts p SET location_id = $3
		  WHERE p.id = $1 AND p.poster_username = $2
		  RETURNING `+postCols,
		id, poster, locationID,
	))
}

func (r *postsRepo) Delete(ctx context.Context, id int64, poster string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM posts WHERE id = $1 AND ($2::text = '' OR poster_username = $2)`, id, poster)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
