package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
)

// --- Mock BookRepository ---

type MockBookRepository struct {
	mock.Mock
}

// Ensure MockBookRepository implements portsrepo.BookRepositoryFacade
var _ portsrepo.BookRepositoryFacade = (*MockBookRepository)(nil)

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindBooksByIDs(ctx context.Context, bookIDs []string) (map[string]domain.Book, error) {
	args := m.Called(ctx, bookIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBestsellers(ctx context.Context, limit int) ([]domain.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteBook(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookRepository) ApplyStockDeltas(ctx context.Context, tx pgx.Tx, soldDeltas map[string]int64, userID string) error {
	args := m.Called(ctx, tx, soldDeltas, userID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

// Ensure MockCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomersByIDs(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error) {
	args := m.Called(ctx, customerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Mock ReceiptRepository ---

type MockReceiptRepository struct {
	mock.Mock
}

// Ensure MockReceiptRepository implements portsrepo.ReceiptRepositoryFacade
var _ portsrepo.ReceiptRepositoryFacade = (*MockReceiptRepository)(nil)

func (m *MockReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt, soldDeltas map[string]int64) error {
	args := m.Called(ctx, receipt, soldDeltas)
	return args.Error(0)
}

func (m *MockReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt, soldDeltas map[string]int64) error {
	args := m.Called(ctx, receipt, soldDeltas)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
