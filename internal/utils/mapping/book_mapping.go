package mapping

import (
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	"github.com/mshaarawy/bookstore_backoffice/internal/models"
)

// ToModelBook converts a domain Book to a model Book
func ToModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:        d.BookID,
		Title:         d.Title,
		Author:        d.Author,
		ISBN:          d.ISBN,
		Price:         d.Price,
		CopiesInStock: d.CopiesInStock,
		TotalSold:     d.TotalSold,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBook converts a model Book to a domain Book
func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:        m.BookID,
		Title:         m.Title,
		Author:        m.Author,
		ISBN:          m.ISBN,
		Price:         m.Price,
		CopiesInStock: m.CopiesInStock,
		TotalSold:     m.TotalSold,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
