package mapping

import (
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	"github.com/mshaarawy/bookstore_backoffice/internal/models"
)

// ToModelReceipt converts a domain Receipt to a model Receipt (header only;
// line items map separately via ToModelReceiptItems).
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:   d.ReceiptID,
		CustomerID:  d.CustomerID,
		TotalPrice:  d.TotalPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToModelReceiptItems converts domain line items to model rows, assigning
// line numbers in submission order.
func ToModelReceiptItems(receiptID string, items []domain.ReceiptItem) []models.ReceiptItem {
	ms := make([]models.ReceiptItem, len(items))
	for i, item := range items {
		ms[i] = models.ReceiptItem{
			ReceiptID: receiptID,
			LineNo:    i + 1,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
		}
	}
	return ms
}

// ToDomainReceipt converts a model Receipt plus its line item rows to a
// domain Receipt. The rows are expected to be ordered by line_no.
func ToDomainReceipt(m models.Receipt, items []models.ReceiptItem) domain.Receipt {
	d := domain.Receipt{
		ReceiptID:   m.ReceiptID,
		CustomerID:  m.CustomerID,
		TotalPrice:  m.TotalPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	d.Items = make([]domain.ReceiptItem, len(items))
	for i, item := range items {
		d.Items[i] = domain.ReceiptItem{BookID: item.BookID, Quantity: item.Quantity}
	}
	return d
}
