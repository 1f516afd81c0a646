package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
)

// CreateBookRequest defines the data needed to add a new book.
type CreateBookRequest struct {
	Title         string          `json:"title" binding:"required,min=2"`
	Author        string          `json:"author" binding:"required"`
	ISBN          string          `json:"isbn" binding:"required,isbn13"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	CopiesInStock int64           `json:"copiesInStock" binding:"min=0"`
}

// UpdateBookRequest defines the data allowed for updating a book.
// Pointers distinguish omitted fields from zero-value fields; the service
// only touches fields that are present and actually changed.
type UpdateBookRequest struct {
	Title         *string          `json:"title" binding:"omitempty,min=2"`
	Author        *string          `json:"author" binding:"omitempty"`
	ISBN          *string          `json:"isbn" binding:"omitempty,isbn13"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty"`
	CopiesInStock *int64           `json:"copiesInStock" binding:"omitempty,min=0"`
}

// BookResponse defines the data returned for a book.
type BookResponse struct {
	BookID        string          `json:"bookID"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn"`
	Price         decimal.Decimal `json:"price"`
	CopiesInStock int64           `json:"copiesInStock"`
	TotalSold     int64           `json:"totalSold"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BestsellerResponse defines the data returned per book by the bestseller query.
type BestsellerResponse struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	TotalSold int64  `json:"totalSold"`
}

// ListBooksResponse wraps the list of books in the standard envelope.
type ListBooksResponse struct {
	Status bool           `json:"status"`
	Books  []BookResponse `json:"books"`
}

// BestsellersResponse wraps the bestseller list in the standard envelope.
type BestsellersResponse struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message"`
	Books   []BestsellerResponse `json:"books"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:        b.BookID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		CopiesInStock: b.CopiesInStock,
		TotalSold:     b.TotalSold,
		CreatedAt:     b.CreatedAt,
	}
}

// ToListBooksResponse converts a slice of domain.Book to ListBooksResponse.
func ToListBooksResponse(books []domain.Book) ListBooksResponse {
	res := make([]BookResponse, len(books))
	for i, b := range books {
		res[i] = ToBookResponse(&b)
	}
	return ListBooksResponse{Status: true, Books: res}
}

// ToBestsellersResponse converts a slice of domain.Book to BestsellersResponse.
func ToBestsellersResponse(books []domain.Book) BestsellersResponse {
	res := make([]BestsellerResponse, len(books))
	for i, b := range books {
		res[i] = BestsellerResponse{Title: b.Title, Author: b.Author, TotalSold: b.TotalSold}
	}
	return BestsellersResponse{Status: true, Message: "Top 5 best-selling books.", Books: res}
}
