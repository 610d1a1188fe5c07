// internal/core/domain/product.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single tracked product in the inventory.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	SellingPrice  float64   `json:"sellingPrice"`
	SoldQuantity  int       `json:"soldQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InventoryState is the complete inventory: every product plus the
// accumulated revenue. It is the unit of persistence; the whole state is
// loaded at the start of a request and written back after a mutation.
type InventoryState struct {
	Products     []Product `json:"products"`
	TotalRevenue float64   `json:"totalRevenue"`
}

// NewInventoryState returns an empty state with a non-nil product slice
// so it serializes as {"products": [], "totalRevenue": 0}.
func NewInventoryState() *InventoryState {
	return &InventoryState{Products: []Product{}}
}

// FindProduct returns a pointer into the state's product slice, or nil
// if no product has the given id.
func (s *InventoryState) FindProduct(id int64) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// RemoveProduct deletes the product with the given id, preserving the
// order of the remaining products. Returns false if the id is unknown.
func (s *InventoryState) RemoveProduct(id int64) bool {
	for i := range s.Products {
		if s.Products[i].ID == id {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return true
		}
	}
	return false
}

// NextID derives a product id from the current Unix-millisecond
// timestamp, bumped past the highest existing id so that rapid
// successive creates can never collide.
func (s *InventoryState) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	for i := range s.Products {
		if s.Products[i].ID >= id {
			id = s.Products[i].ID + 1
		}
	}
	return id
}

// Sell records the sale of qty units: stock goes down, the sold counter
// and the revenue accumulator go up. The caller has already checked
// stock; quantity never drops below zero here.
//
// Revenue is computed in decimal so the accumulator doesn't drift over
// many small float additions.
func (s *InventoryState) Sell(p *Product, qty int) float64 {
	revenue := decimal.NewFromFloat(p.SellingPrice).
		Mul(decimal.NewFromInt(int64(qty)))

	p.Quantity -= qty
	p.SoldQuantity += qty
	s.TotalRevenue = decimal.NewFromFloat(s.TotalRevenue).
		Add(revenue).
		InexactFloat64()

	return revenue.InexactFloat64()
}
