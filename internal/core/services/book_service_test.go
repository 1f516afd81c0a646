package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mshaarawy/bookstore_backoffice/internal/apperrors"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
)

type BookServiceTestSuite struct {
	suite.Suite
	bookRepo *MockBookRepository
	service  portssvc.BookSvcFacade
	ctx      context.Context
	staffID  string
}

func (s *BookServiceTestSuite) SetupTest() {
	s.bookRepo = new(MockBookRepository)
	s.service = services.NewBookService(s.bookRepo)
	s.ctx = context.Background()
	s.staffID = uuid.NewString()
}

func (s *BookServiceTestSuite) TestCreateBook_Success() {
	req := dto.CreateBookRequest{
		Title:         "The Go Programming Language",
		Author:        "Donovan & Kernighan",
		ISBN:          "9780134190440",
		Price:         decimal.NewFromInt(40),
		CopiesInStock: 12,
	}

	s.bookRepo.On("FindBookByISBN", s.ctx, req.ISBN).Return(nil, apperrors.ErrNotFound)
	s.bookRepo.On("SaveBook", s.ctx, mock.AnythingOfType("domain.Book")).Return(nil)

	book, err := s.service.CreateBook(s.ctx, req, s.staffID)

	s.Require().NoError(err)
	s.NotEmpty(book.BookID)
	s.Equal(req.Title, book.Title)
	s.Equal(int64(12), book.CopiesInStock)
	s.Equal(int64(0), book.TotalSold)
	s.Equal(s.staffID, book.CreatedBy)
	s.bookRepo.AssertExpectations(s.T())
}

func (s *BookServiceTestSuite) TestCreateBook_DuplicateISBN() {
	existing := domain.Book{BookID: uuid.NewString(), ISBN: "9780134190440"}
	s.bookRepo.On("FindBookByISBN", s.ctx, existing.ISBN).Return(&existing, nil)

	req := dto.CreateBookRequest{
		Title:  "Another Copy",
		Author: "Someone",
		ISBN:   existing.ISBN,
		Price:  decimal.NewFromInt(10),
	}

	_, err := s.service.CreateBook(s.ctx, req, s.staffID)

	s.ErrorIs(err, services.ErrBookExists)
	s.bookRepo.AssertNotCalled(s.T(), "SaveBook", mock.Anything, mock.Anything)
}

func (s *BookServiceTestSuite) TestUpdateBook_NothingChanged() {
	book := domain.Book{
		BookID:        uuid.NewString(),
		Title:         "Dune",
		Author:        "Frank Herbert",
		ISBN:          "9780441013593",
		Price:         decimal.NewFromInt(20),
		CopiesInStock: 5,
	}
	s.bookRepo.On("FindBookByID", s.ctx, book.BookID).Return(&book, nil)

	sameTitle := "Dune"
	req := dto.UpdateBookRequest{Title: &sameTitle}

	_, err := s.service.UpdateBook(s.ctx, book.BookID, req, s.staffID)

	s.ErrorIs(err, services.ErrNothingToSave)
	s.bookRepo.AssertNotCalled(s.T(), "UpdateBook", mock.Anything, mock.Anything)
}

func (s *BookServiceTestSuite) TestUpdateBook_StockReductionRejected() {
	book := domain.Book{
		BookID:        uuid.NewString(),
		Title:         "Dune",
		CopiesInStock: 5,
	}
	s.bookRepo.On("FindBookByID", s.ctx, book.BookID).Return(&book, nil)

	lower := int64(3)
	req := dto.UpdateBookRequest{CopiesInStock: &lower}

	_, err := s.service.UpdateBook(s.ctx, book.BookID, req, s.staffID)

	s.ErrorIs(err, services.ErrStockReduction)
	s.bookRepo.AssertNotCalled(s.T(), "UpdateBook", mock.Anything, mock.Anything)
}

func (s *BookServiceTestSuite) TestUpdateBook_AppliesChangedFields() {
	book := domain.Book{
		BookID:        uuid.NewString(),
		Title:         "Old Title",
		Author:        "Author",
		ISBN:          "9780441013593",
		Price:         decimal.NewFromInt(20),
		CopiesInStock: 5,
	}
	s.bookRepo.On("FindBookByID", s.ctx, book.BookID).Return(&book, nil)
	s.bookRepo.On("UpdateBook", s.ctx, mock.AnythingOfType("domain.Book")).Return(nil)

	newTitle := "New Title"
	moreStock := int64(9)
	req := dto.UpdateBookRequest{Title: &newTitle, CopiesInStock: &moreStock}

	updated, err := s.service.UpdateBook(s.ctx, book.BookID, req, s.staffID)

	s.Require().NoError(err)
	s.Equal("New Title", updated.Title)
	s.Equal(int64(9), updated.CopiesInStock)
	s.Equal(s.staffID, updated.LastUpdatedBy)
	s.bookRepo.AssertExpectations(s.T())
}

func (s *BookServiceTestSuite) TestGetBook_NotFound() {
	bookID := uuid.NewString()
	s.bookRepo.On("FindBookByID", s.ctx, bookID).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.GetBookByID(s.ctx, bookID)

	s.ErrorIs(err, services.ErrBookNotFound)
}

func (s *BookServiceTestSuite) TestListBestsellers() {
	books := []domain.Book{
		{BookID: uuid.NewString(), Title: "First", TotalSold: 30},
		{BookID: uuid.NewString(), Title: "Second", TotalSold: 10},
	}
	s.bookRepo.On("ListBestsellers", s.ctx, 5).Return(books, nil)

	result, err := s.service.ListBestsellers(s.ctx, 5)

	s.Require().NoError(err)
	s.Require().Len(result, 2)
	s.Equal("First", result[0].Title)
}

func TestBookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookServiceTestSuite))
}
