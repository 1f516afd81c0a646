package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mshaarawy/bookstore_backoffice/internal/apperrors"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
	"github.com/mshaarawy/bookstore_backoffice/internal/middleware"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrReceiptNotFound  = errors.New("receipt not found")
)

// BooksNotFoundError reports receipt line items that reference unknown books.
type BooksNotFoundError struct {
	NotFoundIDs []string
}

func (e *BooksNotFoundError) Error() string {
	return "Some book IDs were not found."
}

// InsufficientStockError reports a line item that requests more copies than
// the book currently has in stock.
type InsufficientStockError struct {
	BookTitle string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for book %q. Available: %d, Requested: %d", e.BookTitle, e.Available, e.Requested)
}

// receiptService provides the receipt workflow: validated creation, edits
// with compensating inventory updates, and enriched listings.
type receiptService struct {
	receiptRepo  portsrepo.ReceiptRepositoryFacade
	bookRepo     portsrepo.BookRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepositoryFacade, bookRepo portsrepo.BookRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.ReceiptSvcFacade {
	return &receiptService{
		receiptRepo:  receiptRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
	}
}

// Ensure receiptService implements the portssvc.ReceiptSvcFacade interface
var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// requestedQuantities sums quantities per book over the request's line items,
// preserving first-seen order of the distinct book IDs.
func requestedQuantities(items []dto.ReceiptItemRequest) (map[string]int64, []string) {
	quantities := make(map[string]int64, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := quantities[item.BookID]; !seen {
			order = append(order, item.BookID)
		}
		quantities[item.BookID] += item.Quantity
	}
	return quantities, order
}

// resolveBooks loads the requested books, failing with BooksNotFoundError if
// any ID is unknown.
func (s *receiptService) resolveBooks(ctx context.Context, bookIDs []string) (map[string]domain.Book, error) {
	books, err := s.bookRepo.FindBooksByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load books for receipt: %w", err)
	}

	if len(books) != len(bookIDs) {
		missing := []string{}
		for _, id := range bookIDs {
			if _, ok := books[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &BooksNotFoundError{NotFoundIDs: missing}
	}

	return books, nil
}

// checkStock verifies every requested quantity against current stock. It is
// called before any inventory change, including on edits, so an edit that
// only shrinks quantities can still be rejected when the shelf is empty.
func checkStock(quantities map[string]int64, order []string, books map[string]domain.Book) error {
	for _, bookID := range order {
		book := books[bookID]
		requested := quantities[bookID]
		if requested > book.CopiesInStock {
			return &InsufficientStockError{
				BookTitle: book.Title,
				Available: book.CopiesInStock,
				Requested: requested,
			}
		}
	}
	return nil
}

// receiptTotal computes the receipt total from per-book quantities at the
// books' current prices.
func receiptTotal(quantities map[string]int64, books map[string]domain.Book) decimal.Decimal {
	total := decimal.Zero
	for bookID, qty := range quantities {
		total = total.Add(books[bookID].Price.Mul(decimal.NewFromInt(qty)))
	}
	return total
}

// CreateReceipt validates the customer, books and stock levels, then persists
// the receipt and its inventory effect in a single database transaction.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*dto.ReceiptResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer %s: %w", req.CustomerID, err)
	}

	quantities, order := requestedQuantities(req.Books)
	books, err := s.resolveBooks(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := checkStock(quantities, order, books); err != nil {
		return nil, err
	}

	now := time.Now()
	receipt := domain.Receipt{
		ReceiptID:  uuid.NewString(),
		CustomerID: customer.CustomerID,
		Items:      toDomainItems(req.Books),
		TotalPrice: receiptTotal(quantities, books),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Every requested unit is a sale; quantities double as sold deltas.
	if err := s.receiptRepo.SaveReceipt(ctx, receipt, quantities); err != nil {
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	logger.Info("Receipt created",
		slog.String("receipt_id", receipt.ReceiptID),
		slog.String("customer_id", customer.CustomerID),
		slog.Int("line_items", len(receipt.Items)),
	)

	resp := buildReceiptResponse(receipt, customer.Name, books)
	return &resp, nil
}

// UpdateReceipt replaces a receipt's line items, validating the new items
// against current stock first and then applying only the net inventory
// change: quantity kept across old and new items is never touched.
func (s *receiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.CreateReceiptRequest, requestingUserID string) (*dto.ReceiptResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to load receipt %s: %w", receiptID, err)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer %s: %w", req.CustomerID, err)
	}

	newQuantities, newOrder := requestedQuantities(req.Books)

	oldQuantities := make(map[string]int64, len(existing.Items))
	for _, item := range existing.Items {
		oldQuantities[item.BookID] += item.Quantity
	}

	// Load every book touched by either version of the receipt so the net
	// deltas can be applied in one pass.
	unionOrder := append([]string{}, newOrder...)
	for _, item := range existing.Items {
		unionOrder = appendUnique(unionOrder, item.BookID)
	}
	books, err := s.resolveBooks(ctx, unionOrder)
	if err != nil {
		return nil, err
	}

	// Validate the requested quantities against stock as it stands now,
	// before the old items are reverted.
	if err := checkStock(newQuantities, newOrder, books); err != nil {
		return nil, err
	}

	// Net effect per book: positive sells more copies, negative returns them.
	soldDeltas := make(map[string]int64, len(unionOrder))
	for _, bookID := range unionOrder {
		delta := newQuantities[bookID] - oldQuantities[bookID]
		if delta != 0 {
			soldDeltas[bookID] = delta
		}
	}

	now := time.Now()
	updated := domain.Receipt{
		ReceiptID:  existing.ReceiptID,
		CustomerID: customer.CustomerID,
		Items:      toDomainItems(req.Books),
		TotalPrice: receiptTotal(newQuantities, books),
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.receiptRepo.UpdateReceipt(ctx, updated, soldDeltas); err != nil {
		return nil, fmt.Errorf("failed to update receipt %s: %w", receiptID, err)
	}

	logger.Info("Receipt updated",
		slog.String("receipt_id", receiptID),
		slog.Int("books_adjusted", len(soldDeltas)),
	)

	resp := buildReceiptResponse(updated, customer.Name, books)
	return &resp, nil
}

// GetReceiptByID returns a single receipt enriched with customer and book details.
func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*dto.ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to load receipt %s: %w", receiptID, err)
	}

	enriched, err := s.enrich(ctx, []domain.Receipt{*receipt})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// ListReceipts returns all receipts enriched with customer and book details,
// newest first.
func (s *receiptService) ListReceipts(ctx context.Context) ([]dto.ReceiptResponse, error) {
	receipts, err := s.receiptRepo.ListReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return s.enrich(ctx, receipts)
}

// enrich resolves customer names and book titles/prices for the given
// receipts in two bulk lookups.
func (s *receiptService) enrich(ctx context.Context, receipts []domain.Receipt) ([]dto.ReceiptResponse, error) {
	customerIDs := []string{}
	bookIDs := []string{}
	seenCustomers := map[string]bool{}
	seenBooks := map[string]bool{}
	for _, r := range receipts {
		if !seenCustomers[r.CustomerID] {
			seenCustomers[r.CustomerID] = true
			customerIDs = append(customerIDs, r.CustomerID)
		}
		for _, item := range r.Items {
			if !seenBooks[item.BookID] {
				seenBooks[item.BookID] = true
				bookIDs = append(bookIDs, item.BookID)
			}
		}
	}

	customers, err := s.customerRepo.FindCustomersByIDs(ctx, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers for receipts: %w", err)
	}
	books, err := s.bookRepo.FindBooksByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load books for receipts: %w", err)
	}

	responses := make([]dto.ReceiptResponse, len(receipts))
	for i, r := range receipts {
		responses[i] = buildReceiptResponse(r, customers[r.CustomerID].Name, books)
	}
	return responses, nil
}

func toDomainItems(items []dto.ReceiptItemRequest) []domain.ReceiptItem {
	ds := make([]domain.ReceiptItem, len(items))
	for i, item := range items {
		ds[i] = domain.ReceiptItem{BookID: item.BookID, Quantity: item.Quantity}
	}
	return ds
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// buildReceiptResponse assembles the denormalized receipt view. Books that
// have been deleted since the sale keep their line with a blank title.
func buildReceiptResponse(receipt domain.Receipt, customerName string, books map[string]domain.Book) dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, len(receipt.Items))
	for i, item := range receipt.Items {
		book := books[item.BookID]
		items[i] = dto.ReceiptItemResponse{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Title:    book.Title,
			Price:    book.Price,
		}
	}
	return dto.ReceiptResponse{
		ID:           receipt.ReceiptID,
		CustomerName: customerName,
		BookItems:    items,
		TotalPrice:   receipt.TotalPrice,
		CreatedAt:    receipt.CreatedAt,
	}
}
