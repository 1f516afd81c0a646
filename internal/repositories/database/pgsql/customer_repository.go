package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/mshaarawy/bookstore_backoffice/internal/apperrors"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	"github.com/mshaarawy/bookstore_backoffice/internal/models"
	"github.com/mshaarawy/bookstore_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, phone, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

func (r *PgxCustomerRepository) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by phone: %w", err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// FindCustomersByIDs returns the found customers keyed by ID.
func (r *PgxCustomerRepository) FindCustomersByIDs(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error) {
	if len(customerIDs) == 0 {
		return map[string]domain.Customer{}, nil
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers by IDs: %w", err)
	}
	defer rows.Close()

	customers := make(map[string]domain.Customer, len(customerIDs))
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers[m.CustomerID] = mapping.ToDomainCustomer(*m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}

	return customers, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC, customer_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}

	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $1, phone = $2, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Phone,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CustomerID,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update customer %s: %w", m.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	query := `DELETE FROM customers WHERE customer_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
