package orders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrBookMismatch: inventory returned a book that none of the requested
// line items asked for.
var ErrBookMismatch = errors.New("no ordered line item for returned book")

// Store persists Order aggregates. Deleting an order deletes its line
// items with it; there is no independent lifecycle for BookDetails.
type Store interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id int) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	DeleteByID(ctx context.Context, id int) error
}

// InventoryClient talks to the remote book-inventory service.
// OrderBooks reserves stock and returns the priced book records;
// ReturnBooks credits stock back after a cancellation.
type InventoryClient interface {
	OrderBooks(ctx context.Context, details []BookDetail) ([]Book, error)
	ReturnBooks(ctx context.Context, details []BookDetail) (bool, error)
}

// Service holds the business rules around orders. All collaborators are
// injected; failures are returned as errors, never panics.
type Service struct {
	store     Store
	inventory InventoryClient
	log       *zap.Logger
}

func NewService(store Store, inventory InventoryClient, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, inventory: inventory, log: log}
}

func (s *Service) GetAllOrders(ctx context.Context) ([]Order, error) {
	return s.store.FindAll(ctx)
}

// GetOrderByID returns (nil, nil) when no order has the given id.
func (s *Service) GetOrderByID(ctx context.Context, id int) (*Order, error) {
	return s.store.FindByID(ctx, id)
}

// PlaceOrder reserves stock for every line item in a single inventory
// call, computes the total from the returned prices, and persists the
// order. The order is never persisted unless the inventory call succeeds.
// There is no rollback path: a store failure after a successful reserve
// leaves the stock reserved.
func (s *Service) PlaceOrder(ctx context.Context, order *Order) (*OrderSummary, error) {
	books, err := s.inventory.OrderBooks(ctx, order.BookDetails)
	if err != nil {
		return nil, err
	}

	byBookID := make(map[int]*BookDetail, len(order.BookDetails))
	for i := range order.BookDetails {
		byBookID[order.BookDetails[i].BookID] = &order.BookDetails[i]
	}

	var total float64
	for i := range books {
		detail, ok := byBookID[books[i].ID]
		if !ok {
			return nil, fmt.Errorf("%w: book %d", ErrBookMismatch, books[i].ID)
		}
		total += books[i].Price * float64(detail.OrderedQuantity)
		// stock level in, ordered amount out; see Book.Quantity
		books[i].Quantity = detail.OrderedQuantity
	}

	order.TotalAmount = total
	if err := s.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.log.Info("order executed",
		zap.Int("order_id", order.ID),
		zap.Float64("total_amount", total),
	)

	return &OrderSummary{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Address:      order.Address,
		TotalAmount:  order.TotalAmount,
		Books:        books,
	}, nil
}

// DeleteOrder cancels an order and credits its books back to inventory.
// An absent id yields (false, nil). The store delete runs before the
// restore call; a restore that fails or reports non-success leaves the
// order gone with no stock credited back, and the result is false.
func (s *Service) DeleteOrder(ctx context.Context, id int) (bool, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return false, nil
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}

	restored, err := s.inventory.ReturnBooks(ctx, order.BookDetails)
	if err != nil {
		return false, fmt.Errorf("return books: %w", err)
	}
	s.log.Info("order cancelled",
		zap.Int("order_id", id),
		zap.Bool("stock_restored", restored),
	)
	return restored, nil
}
