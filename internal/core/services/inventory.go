// internal/core/services/inventory.go
package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
)

// InventoryService handles inventory business logic. Every mutating
// operation is a full load-mutate-save cycle over the persisted state,
// serialized by a single mutex so concurrent requests cannot lose each
// other's writes.
type InventoryService struct {
	store  ports.StateStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex // guards the load-mutate-save cycle
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(store ports.StateStore, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		store:  store,
		logger: logger.With(slog.String("service", "inventory")),
		now:    time.Now,
	}
}

// List returns the full inventory state unmodified. No side effects.
func (s *InventoryService) List(ctx context.Context) (*domain.InventoryState, error) {
	return s.store.Load(ctx), nil
}

// Create appends a new product to the inventory and persists the state.
// The caller has already validated and coerced the input.
func (s *InventoryService) Create(ctx context.Context, params ports.CreateParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load(ctx)

	now := s.now()
	product := domain.Product{
		ID:            state.NextID(now),
		Name:          params.Name,
		Quantity:      params.Quantity,
		PurchasePrice: params.PurchasePrice,
		SellingPrice:  params.SellingPrice,
		SoldQuantity:  0,
		CreatedAt:     now,
	}
	state.Products = append(state.Products, product)

	if err := s.store.Save(ctx, state); err != nil {
		// The in-memory mutation is discarded; the prior persisted state
		// remains authoritative.
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
		slog.Int("quantity", product.Quantity))

	return &product, nil
}

// Sell decrements stock, increments the sold counter and accumulates
// revenue, then persists the full state.
func (s *InventoryService) Sell(ctx context.Context, productID int64, quantity int) (*ports.SellResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be a positive number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load(ctx)

	product := state.FindProduct(productID)
	if product == nil {
		return nil, &domain.NotFoundError{ID: productID}
	}

	if quantity > product.Quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Quantity,
		}
	}

	revenue := state.Sell(product, quantity)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product sold",
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Float64("revenue", revenue))

	sold := *product
	return &ports.SellResult{Revenue: revenue, Product: &sold}, nil
}

// Delete removes a product from the inventory and persists the state.
// Accumulated revenue is kept.
func (s *InventoryService) Delete(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load(ctx)

	if !state.RemoveProduct(productID) {
		return &domain.NotFoundError{ID: productID}
	}

	if err := s.store.Save(ctx, state); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", productID))

	return nil
}

// Summary aggregates the inventory for the dashboard.
func (s *InventoryService) Summary(ctx context.Context) (*ports.InventorySummary, error) {
	state := s.store.Load(ctx)

	summary := &ports.InventorySummary{
		TotalProducts: len(state.Products),
		TotalRevenue:  state.TotalRevenue,
		TopSellers:    []ports.TopSeller{},
	}

	stockCost := decimal.Zero
	stockValue := decimal.Zero
	for _, p := range state.Products {
		summary.UnitsInStock += p.Quantity
		summary.UnitsSold += p.SoldQuantity

		qty := decimal.NewFromInt(int64(p.Quantity))
		stockCost = stockCost.Add(decimal.NewFromFloat(p.PurchasePrice).Mul(qty))
		stockValue = stockValue.Add(decimal.NewFromFloat(p.SellingPrice).Mul(qty))

		if p.SoldQuantity > 0 {
			summary.TopSellers = append(summary.TopSellers, ports.TopSeller{
				ProductID:    p.ID,
				Name:         p.Name,
				SoldQuantity: p.SoldQuantity,
				Revenue: decimal.NewFromFloat(p.SellingPrice).
					Mul(decimal.NewFromInt(int64(p.SoldQuantity))).
					InexactFloat64(),
			})
		}
	}
	summary.StockCost = stockCost.InexactFloat64()
	summary.StockValue = stockValue.InexactFloat64()

	sort.Slice(summary.TopSellers, func(i, j int) bool {
		return summary.TopSellers[i].SoldQuantity > summary.TopSellers[j].SoldQuantity
	})
	if len(summary.TopSellers) > 5 {
		summary.TopSellers = summary.TopSellers[:5]
	}

	return summary, nil
}
