package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/repository"
)

type itemsRepo struct{ pool *pgxpool.Pool }

func NewItems(pool *pgxpool.Pool) repository.Items {
	return &itemsRepo{pool: pool}
}

const itemCols = `id, image, category, title, price, is_sold, description, owner_username`

func scanItem(row scanner) (models.Item, error) {
	var it models.Item
	err := row.Scan(&it.ID, &it.Image, &it.Category, &it.Title, &it.Price, &it.IsSold, &it.Description, &it.OwnerUsername)
	return it, mapErr(err)
}

func (r *itemsRepo) Create(ctx context.Context, it models.Item) (models.Item, error) {
	return scanItem(r.pool.QueryRow(ctx,
		`INSERT INTO items (image, category, title, price, is_sold, description, owner_username)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+itemCols,
		it.Image, it.Category, it.Title, it.Price, it.IsSold, it.Description, it.OwnerUsername,
	))
}

func (r *itemsRepo) Get(ctx context.Context, id int64) (models.Item, error) {
	return scanItem(r.pool.QueryRow(ctx, `SELECT `+itemCols+` FROM items WHERE id = $1`, id))
}

func (r *itemsRepo) UpdateOwned(ctx context.Context, id int64, owner string, patch models.ItemPatch) (models.Item, error) {
	var p params
	var sets []string
	if patch.Image != nil {
		sets = append(sets, "image = "+p.bind(*patch.Image))
	}
	if patch.Category != nil {
		sets = append(sets, "category = "+p.bind(*patch.Category))
	}
	if patch.Title != nil {
		sets = append(sets, "title = "+p.bind(*patch.Title))
	}
	if patch.Price != nil {
		sets = append(sets, "price = "+p.bind(*patch.Price))
	}
	if patch.IsSold != nil {
		sets = append(sets, "is_sold = "+p.bind(*patch.IsSold))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+p.bind(*patch.Description))
	}
	if len(sets) == 0 {
		// keep the ownership condition even for a no-op
		sets = append(sets, "id = id")
	}

	q := `UPDATE items SET ` + strings.Join(sets, ", ") +
		` WHERE id = ` + p.bind(id) + ` AND owner_username = ` + p.bind(owner) +
		` RETURNING ` + itemCols
	return scanItem(r.pool.QueryRow(ctx, q, p.args...))
}

func (r *itemsRepo) DeleteOwned(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1 AND owner_username = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
