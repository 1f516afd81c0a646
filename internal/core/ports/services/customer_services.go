package services

import (
	"context"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by their ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves all customers, newest first.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// UpdateCustomer applies a partial update to an existing customer.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)

	// DeleteCustomer removes a customer.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
