package repositories

import (
	"context"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by their ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByPhone retrieves a customer by phone number, or apperrors.ErrNotFound.
	FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)

	// FindCustomersByIDs retrieves multiple customers by their IDs.
	FindCustomersByIDs(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error)

	// ListCustomers retrieves all customers.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer. Returns apperrors.ErrNotFound if absent.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
