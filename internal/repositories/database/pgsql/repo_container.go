package pgsql

import (
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bookRepo := newPgxBookRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	receiptRepo := newPgxReceiptRepository(dbPool, bookRepo)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BookRepo:     bookRepo,
		CustomerRepo: customerRepo,
		ReceiptRepo:  receiptRepo,
		UserRepo:     userRepo,
	}
}
