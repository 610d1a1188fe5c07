// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
)

// InventoryService defines the application service port for inventory.
// This interface is implemented by the application service.
type InventoryService interface {
	List(ctx context.Context) (*domain.InventoryState, error)
	Create(ctx context.Context, params CreateParams) (*domain.Product, error)
	Sell(ctx context.Context, productID int64, quantity int) (*SellResult, error)
	Delete(ctx context.Context, productID int64) error
	Summary(ctx context.Context) (*InventorySummary, error)
}

// CreateParams holds the validated input for creating a product.
type CreateParams struct {
	Name          string
	Quantity      int
	PurchasePrice float64
	SellingPrice  float64
}

// SellResult holds the outcome of a sale.
type SellResult struct {
	Revenue float64         `json:"revenue"`
	Product *domain.Product `json:"product"`
}

// InventorySummary aggregates the inventory for the dashboard.
type InventorySummary struct {
	TotalProducts int         `json:"total_products"`
	UnitsInStock  int         `json:"units_in_stock"`
	UnitsSold     int         `json:"units_sold"`
	StockCost     float64     `json:"stock_cost"`
	StockValue    float64     `json:"stock_value"`
	TotalRevenue  float64     `json:"total_revenue"`
	TopSellers    []TopSeller `json:"top_sellers"`
}

// TopSeller is a dashboard row for the best-selling products.
type TopSeller struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	SoldQuantity int     `json:"sold_quantity"`
	Revenue      float64 `json:"revenue"`
}
