package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
	"github.com/mshaarawy/bookstore_backoffice/internal/handlers"
	"github.com/mshaarawy/bookstore_backoffice/internal/middleware"
)

// --- Mock ReceiptService ---

type MockReceiptService struct {
	mock.Mock
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

func (m *MockReceiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*dto.ReceiptResponse, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceiptResponse), args.Error(1)
}

func (m *MockReceiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.CreateReceiptRequest, requestingUserID string) (*dto.ReceiptResponse, error) {
	args := m.Called(ctx, receiptID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceiptResponse), args.Error(1)
}

func (m *MockReceiptService) GetReceiptByID(ctx context.Context, receiptID string) (*dto.ReceiptResponse, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceiptResponse), args.Error(1)
}

func (m *MockReceiptService) ListReceipts(ctx context.Context) ([]dto.ReceiptResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ReceiptResponse), args.Error(1)
}

// --- Mock BookService ---

type MockBookService struct {
	mock.Mock
}

var _ portssvc.BookSvcFacade = (*MockBookService)(nil)

func (m *MockBookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookService) ListBestsellers(ctx context.Context, limit int) ([]domain.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookService) CreateBook(ctx context.Context, req dto.CreateBookRequest, creatorUserID string) (*domain.Book, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, requestingUserID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) DeleteBook(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

type ReceiptHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockReceiptService *MockReceiptService
	mockBookService    *MockBookService
	jwtSecret          string
	staffID            string
}

func (suite *ReceiptHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.staffID = uuid.NewString()

	suite.mockReceiptService = new(MockReceiptService)
	suite.mockBookService = new(MockBookService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterReceiptRoutes(v1, suite.mockReceiptService, suite.mockBookService)
}

// generateTestToken creates a JWT for the test staff user.
func (suite *ReceiptHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReceiptHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.staffID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_Success() {
	bookID := uuid.NewString()
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: bookID, Quantity: 2}},
	}
	response := &dto.ReceiptResponse{
		ID:           uuid.NewString(),
		CustomerName: "Nadia Hassan",
		BookItems: []dto.ReceiptItemResponse{
			{BookID: bookID, Quantity: 2, Title: "Dune", Price: decimal.NewFromInt(50)},
		},
		TotalPrice: decimal.NewFromInt(100),
	}

	suite.mockReceiptService.On("CreateReceipt", mock.Anything, reqBody, suite.staffID).Return(response, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/receipts/add", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var envelope dto.ReceiptEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Status)
	suite.Equal("Nadia Hassan", envelope.Receipt.CustomerName)
	suite.True(envelope.Receipt.TotalPrice.Equal(decimal.NewFromInt(100)))
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_CustomerNotFound() {
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: uuid.NewString(), Quantity: 1}},
	}

	suite.mockReceiptService.On("CreateReceipt", mock.Anything, reqBody, suite.staffID).
		Return(nil, services.ErrCustomerNotFound)

	w := suite.doRequest(http.MethodPost, "/api/v1/receipts/add", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Customer not found.")
	suite.Contains(w.Body.String(), `"status":false`)
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_InsufficientStock() {
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: uuid.NewString(), Quantity: 4}},
	}

	suite.mockReceiptService.On("CreateReceipt", mock.Anything, reqBody, suite.staffID).
		Return(nil, &services.InsufficientStockError{BookTitle: "Dune", Available: 1, Requested: 4})

	w := suite.doRequest(http.MethodPost, "/api/v1/receipts/add", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Not enough stock for book")
	suite.Contains(w.Body.String(), "Available: 1, Requested: 4")
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_UnknownBooks() {
	missingID := uuid.NewString()
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: missingID, Quantity: 1}},
	}

	suite.mockReceiptService.On("CreateReceipt", mock.Anything, reqBody, suite.staffID).
		Return(nil, &services.BooksNotFoundError{NotFoundIDs: []string{missingID}})

	w := suite.doRequest(http.MethodPost, "/api/v1/receipts/add", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Some book IDs were not found.")
	suite.Contains(w.Body.String(), missingID)
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_EmptyBooksRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/receipts/add", map[string]any{
		"customerId": uuid.NewString(),
		"books":      []any{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceiptService.AssertNotCalled(suite.T(), "CreateReceipt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_Unauthorized() {
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: uuid.NewString(), Quantity: 1}},
	}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(reqBody))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/add", &buf)
	req.Header.Set("Content-Type", "application/json")
	// No Authorization header
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ReceiptHandlerTestSuite) TestUpdateReceipt_MalformedIDIsNotFound() {
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: uuid.NewString(), Quantity: 1}},
	}

	w := suite.doRequest(http.MethodPut, "/api/v1/receipts/not-a-uuid", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Receipt not found.")
	suite.mockReceiptService.AssertNotCalled(suite.T(), "UpdateReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceiptHandlerTestSuite) TestUpdateReceipt_Success() {
	receiptID := uuid.NewString()
	reqBody := dto.CreateReceiptRequest{
		CustomerID: uuid.NewString(),
		Books:      []dto.ReceiptItemRequest{{BookID: uuid.NewString(), Quantity: 3}},
	}
	response := &dto.ReceiptResponse{
		ID:         receiptID,
		TotalPrice: decimal.NewFromInt(90),
	}

	suite.mockReceiptService.On("UpdateReceipt", mock.Anything, receiptID, reqBody, suite.staffID).Return(response, nil)

	w := suite.doRequest(http.MethodPut, fmt.Sprintf("/api/v1/receipts/%s", receiptID), reqBody)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), receiptID)
}

func (suite *ReceiptHandlerTestSuite) TestListReceipts() {
	receipts := []dto.ReceiptResponse{
		{ID: uuid.NewString(), CustomerName: "A"},
		{ID: uuid.NewString(), CustomerName: "B"},
	}
	suite.mockReceiptService.On("ListReceipts", mock.Anything).Return(receipts, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/receipts/all", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListReceiptsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Status)
	suite.Len(resp.Receipts, 2)
}

func (suite *ReceiptHandlerTestSuite) TestListBestsellers_CappedAtFive() {
	books := []domain.Book{
		{Title: "1", TotalSold: 50},
		{Title: "2", TotalSold: 40},
		{Title: "3", TotalSold: 30},
		{Title: "4", TotalSold: 20},
		{Title: "5", TotalSold: 10},
	}
	suite.mockBookService.On("ListBestsellers", mock.Anything, 5).Return(books, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/receipts/bestsellers", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BestsellersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Status)
	suite.LessOrEqual(len(resp.Books), 5)
	suite.Equal("1", resp.Books[0].Title)
	suite.mockBookService.AssertExpectations(suite.T())
}

func TestReceiptHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptHandlerTestSuite))
}
