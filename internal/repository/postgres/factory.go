package postgres

import (
	repo "github.com/fekusatech/inoutcome-wa/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Wallets      repo.Wallets
	Transactions repo.Transactions
	Sessions     repo.Sessions
	AuditLogs    repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Wallets:      &walletsRepo{pool},
		Transactions: &transactionsRepo{pool},
		Sessions:     &sessionsRepo{pool},
		AuditLogs:    &auditLogsRepo{pool},
	}
}
