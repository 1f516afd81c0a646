package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mshaarawy/bookstore_backoffice/internal/apperrors"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
	"github.com/mshaarawy/bookstore_backoffice/internal/middleware"
)

var ErrPhoneExists = errors.New("phone number already exists")

// customerService provides customer directory management.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

// Ensure customerService implements the portssvc.CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer persists a new customer after checking the phone number is
// not already registered.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.customerRepo.FindCustomerByPhone(ctx, req.Phone)
	if err == nil {
		return nil, ErrPhoneExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrPhoneExists
		}
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer applies the provided fields to an existing customer. It
// fails with ErrNothingToSave when nothing actually changed.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	changed := false
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != customer.Name {
			customer.Name = name
			changed = true
		}
	}
	if req.Phone != nil {
		if phone := strings.TrimSpace(*req.Phone); phone != customer.Phone {
			if _, err := s.customerRepo.FindCustomerByPhone(ctx, phone); err == nil {
				return nil, ErrPhoneExists
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
			}
			customer.Phone = phone
			changed = true
		}
	}

	if !changed {
		return nil, ErrNothingToSave
	}

	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrPhoneExists
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	return nil
}
