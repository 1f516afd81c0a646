package handlers_test

import (
	"bytes"
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
	"github.com/mshaarawy/bookstore_backoffice/internal/core/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
	"github.com/mshaarawy/bookstore_backoffice/internal/handlers"
	"github.com/mshaarawy/bookstore_backoffice/internal/middleware"
)

type BookHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockBookService *MockBookService
	jwtSecret       string
	staffID         string
}

func (suite *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.staffID = uuid.NewString()

	suite.mockBookService = new(MockBookService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterBookRoutes(v1, suite.mockBookService)
}

func (suite *BookHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *BookHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
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

func (suite *BookHandlerTestSuite) TestCreateBook_Success() {
	reqBody := dto.CreateBookRequest{
		Title:         "Dune",
		Author:        "Frank Herbert",
		ISBN:          "9780441013593",
		Price:         decimal.NewFromInt(50),
		CopiesInStock: 20,
	}
	created := &domain.Book{
		BookID:        uuid.NewString(),
		Title:         reqBody.Title,
		Author:        reqBody.Author,
		ISBN:          reqBody.ISBN,
		Price:         reqBody.Price,
		CopiesInStock: reqBody.CopiesInStock,
	}

	suite.mockBookService.On("CreateBook", mock.Anything, reqBody, suite.staffID).Return(created, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/books/add", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"status":true`)
	suite.Contains(w.Body.String(), "Dune")
}

func (suite *BookHandlerTestSuite) TestCreateBook_DuplicateISBN() {
	reqBody := dto.CreateBookRequest{
		Title:         "Dune",
		Author:        "Frank Herbert",
		ISBN:          "9780441013593",
		Price:         decimal.NewFromInt(50),
		CopiesInStock: 20,
	}

	suite.mockBookService.On("CreateBook", mock.Anything, reqBody, suite.staffID).
		Return(nil, services.ErrBookExists)

	w := suite.doRequest(http.MethodPost, "/api/v1/books/add", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "This book already exists.")
	suite.Contains(w.Body.String(), `"status":false`)
}

func (suite *BookHandlerTestSuite) TestCreateBook_InvalidISBNRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/books/add", map[string]any{
		"title":         "Dune",
		"author":        "Frank Herbert",
		"isbn":          "not-an-isbn",
		"price":         50,
		"copiesInStock": 20,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookService.AssertNotCalled(suite.T(), "CreateBook", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookHandlerTestSuite) TestGetBook_MalformedIDIsNotFound() {
	w := suite.doRequest(http.MethodGet, "/api/v1/books/not-a-uuid", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Book not found.")
	suite.mockBookService.AssertNotCalled(suite.T(), "GetBookByID", mock.Anything, mock.Anything)
}

func (suite *BookHandlerTestSuite) TestUpdateBook_NothingChanged() {
	bookID := uuid.NewString()
	title := "Dune"

	suite.mockBookService.On("UpdateBook", mock.Anything, bookID, mock.Anything, suite.staffID).
		Return(nil, services.ErrNothingToSave)

	w := suite.doRequest(http.MethodPatch, fmt.Sprintf("/api/v1/books/%s", bookID), dto.UpdateBookRequest{Title: &title})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":true`)
	suite.Contains(w.Body.String(), "Nothing changed. Book was not updated.")
}

func (suite *BookHandlerTestSuite) TestUpdateBook_DuplicateISBN() {
	bookID := uuid.NewString()
	isbn := "9780441013593"

	suite.mockBookService.On("UpdateBook", mock.Anything, bookID, mock.Anything, suite.staffID).
		Return(nil, services.ErrBookExists)

	w := suite.doRequest(http.MethodPatch, fmt.Sprintf("/api/v1/books/%s", bookID), dto.UpdateBookRequest{ISBN: &isbn})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Another book with this ISBN already exists.")
}

func (suite *BookHandlerTestSuite) TestUpdateBook_StockReductionRejected() {
	bookID := uuid.NewString()
	stock := int64(1)

	suite.mockBookService.On("UpdateBook", mock.Anything, bookID, mock.Anything, suite.staffID).
		Return(nil, services.ErrStockReduction)

	w := suite.doRequest(http.MethodPatch, fmt.Sprintf("/api/v1/books/%s", bookID), dto.UpdateBookRequest{CopiesInStock: &stock})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "You cannot reduce the number of copies in stock below the existing value.")
}

func (suite *BookHandlerTestSuite) TestDeleteBook_Success() {
	bookID := uuid.NewString()
	suite.mockBookService.On("DeleteBook", mock.Anything, bookID).Return(nil)

	w := suite.doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/books/%s", bookID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Book deleted successfully.")
}

func TestBookHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}
