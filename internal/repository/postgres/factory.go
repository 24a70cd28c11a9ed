package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

type Repositories struct {
	Users        repo.Users
	Items        repo.Items
	Locations    repo.Locations
	Posts        repo.Posts
	Transactions repo.Transactions
	AuditLogs    repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        NewUsers(pool),
		Items:        NewItems(pool),
		Locations:    NewLocations(pool),
		Posts:        NewPosts(pool),
		Transactions: NewTransactions(pool),
		AuditLogs:    NewAuditLogs(pool),
	}
}
