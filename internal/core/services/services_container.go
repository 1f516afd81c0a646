package services

import (
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Book = NewBookService(repos.BookRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Receipt = NewReceiptService(repos.ReceiptRepo, repos.BookRepo, repos.CustomerRepo)
	container.User = NewUserService(repos.UserRepo)

	return container
}
