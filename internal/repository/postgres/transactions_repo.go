package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/repository"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

func NewTransactions(pool *pgxpool.Pool) repository.Transactions {
	return &transactionsRepo{pool: pool}
}

const txnCols = `id, post_id, buyer_username, seller_username, price, transaction_date, rated`

func scanTxn(row scanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.PostID, &t.BuyerUsername, &t.SellerUsername, &t.Price, &t.TransactionDate, &t.Rated)
	return t, mapErr(err)
}

func (r *transactionsRepo) Create(ctx context.Context, in models.NewTransaction) (models.Transaction, error) {
	var out models.Transaction
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var itemID int64
		err := tx.QueryRow(ctx,
			`UPDATE items SET is_sold = TRUE
			  WHERE id = (SELECT item_id FROM posts WHERE id = $1) AND NOT is_sold
			  RETURNING id`,
			in.PostID,
		).Scan(&itemID)
		if errors.Is(err, pgx.ErrNoRows) {
			var posted bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, in.PostID).Scan(&posted); err != nil {
				return err
			}
			if !posted {
				return repository.ErrNotFound
			}
			return repository.ErrConflict
		}
		if err != nil {
			return err
		}

		out, err = scanTxn(tx.QueryRow(ctx,
			`INSERT INTO transactions (post_id, buyer_username, seller_username, price)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+txnCols,
			in.PostID, in.BuyerUsername, in.SellerUsername, in.Price,
		))
		return err
	})
	return out, err
}

func (r *transactionsRepo) Get(ctx context.Context, id int64) (models.Transaction, error) {
	return scanTxn(r.pool.QueryRow(ctx, `SELECT `+txnCols+` FROM transactions WHERE id = $1`, id))
}

// List returns username's transactions matching f. The party condition is
// always applied, whatever else f asks for.
func (r *transactionsRepo) List(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error) {
	var p params
	self := p.bind(username)
	conds := []string{"(buyer_username = " + self + " OR seller_username = " + self + ")"}
	if f.MinPrice != nil {
		conds = append(conds, "price >= "+p.bind(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= "+p.bind(*f.MaxPrice))
	}
	if f.BuyerUsername != "" {
		conds = append(conds, "buyer_username = "+p.bind(f.BuyerUsername))
	}
	if f.SellerUsername != "" {
		conds = append(conds, "seller_username = "+p.bind(f.SellerUsername))
	}
	if f.TransactionDate != nil {
		conds = append(conds, "transaction_date::date = "+p.bind(f.TransactionDate.Format("2006-01-02"))+"::date")
	}

	return r.list(ctx, `SELECT `+txnCols+` FROM transactions`+where(conds)+` ORDER BY id`, p.args...)
}

func (r *transactionsRepo) ListForUser(ctx context.Context, username string) ([]models.Transaction, error) {
	return r.list(ctx,
		`SELECT `+txnCols+` FROM transactions WHERE buyer_username = $1 OR seller_username = $1 ORDER BY id`,
		username)
}

func (r *transactionsRepo) list(ctx context.Context, q string, args ...any) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) MarkRated(ctx context.Context, id int64, buyer string) (models.Transaction, error) {
	return markRated(ctx, r.pool, id, buyer)
}

func (r *transactionsRepo) Rate(ctx context.Context, id int64, buyer string, rating float64) (models.Transaction, models.UserRating, error) {
	var (
		t      models.Transaction
		seller models.UserRating
	)
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		if t, err = markRated(ctx, tx, id, buyer); err != nil {
			return err
		}
		seller, err = addRating(ctx, tx, t.SellerUsername, rating)
		return err
	})
	return t, seller, err
}

// markRated is the only unrated -> rated transition. ErrConflict when the row
// is missing, already rated or not bought by buyer.
func markRated(ctx context.Context, q querier, id int64, buyer string) (models.Transaction, error) {
	t, err := scanTxn(q.QueryRow(ctx,
		`UPDATE transactions SET rated = TRUE
		  WHERE id = $1 AND buyer_username = $2 AND NOT rated
		  RETURNING `+txnCols,
		id, buyer,
	))
	if errors.Is(err, repository.ErrNotFound) {
		return models.Transaction{}, repository.ErrConflict
	}
	return t, err
}
