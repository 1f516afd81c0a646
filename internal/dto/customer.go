package dto

import (
	"time"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to add a new customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=3"`
	Phone string `json:"phone" binding:"required,phone"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers distinguish omitted fields from zero-value fields.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=3"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListCustomersResponse wraps the list of customers in the standard envelope.
type ListCustomersResponse struct {
	Status    bool               `json:"status"`
	Customers []CustomerResponse `json:"customers"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCustomersResponse converts a slice of domain.Customer to ListCustomersResponse.
func ToListCustomersResponse(customers []domain.Customer) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Status: true, Customers: res}
}
