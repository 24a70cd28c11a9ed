package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `username, password_hash, first_name, last_name, email, is_admin,
	phone_number, profile_picture, rating, num_ratings`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin,
		&u.PhoneNumber, &u.ProfilePicture, &u.Rating, &u.NumRatings)
	return u, mapErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, email, is_admin, phone_number, profile_picture)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userCols,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsAdmin, u.PhoneNumber, u.ProfilePicture,
	))
}

func (r *usersRepo) Get(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username = $1`, username))
}

func (r *usersRepo) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	var p params
	var conds []string
	if f.MinRating != nil {
		conds = append(conds, "rating >= "+p.bind(*f.MinRating))
	}
	if f.Username != "" {
		conds = append(conds, "username ILIKE "+p.bind(contains(f.Username)))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users`+where(conds)+` ORDER BY rating DESC NULLS LAST, username`,
		p.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, username string, patch models.UserPatch) (models.User, error) {
	var p params
	var sets []string
	set := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = "+p.bind(*v))
		}
	}
	set("first_name", patch.FirstName)
	set("last_name", patch.LastName)
	set("email", patch.Email)
	set("phone_number", patch.PhoneNumber)
	set("profile_picture", patch.ProfilePicture)
	if len(sets) == 0 {
		return r.Get(ctx, username)
	}

	q := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE username = ` + p.bind(username) + ` RETURNING ` + userCols
	return scanUser(r.pool.QueryRow(ctx, q, p.args...))
}

func (r *usersRepo) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *usersRepo) AddRating(ctx context.Context, username string, rating float64) (models.UserRating, error) {
	var out models.UserRating
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		out, err = addRating(ctx, tx, username, rating)
		return err
	})
	return out, err
}

// addRating folds rating into the user's running mean. The row is locked for
// the rest of the surrounding transaction.
func addRating(ctx context.Context, q querier, username string, rating float64) (models.UserRating, error) {
	var (
		mean  *float64
		count int
	)
	err := q.QueryRow(ctx,
		`SELECT rating, num_ratings FROM users WHERE username = $1 FOR UPDATE`, username,
	).Scan(&mean, &count)
	if err != nil {
		return models.UserRating{}, mapErr(err)
	}

	next, n := models.FoldRating(mean, count, rating)
	out := models.UserRating{Username: username}
	err = q.QueryRow(ctx,
		`UPDATE users SET rating = $2, num_ratings = $3
		  WHERE username = $1
		  RETURNING rating, num_ratings`,
		username, next, n,
	).Scan(&out.Rating, &out.NumRatings)
	return out, mapErr(err)
}
