// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
)

// InventoryHandler handles product-related HTTP requests
type InventoryHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// ListProducts handles GET /api/products
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load inventory")
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// CreateProduct handles POST /api/products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.service.Create(ctx, req.ToParams())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create product",
			slog.String("name", req.Name),
			slog.String("error", err.Error()))
		h.respondDomainError(w, err, "Failed to create product")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product added successfully",
		"product": product,
	})
}

// SellProduct handles PUT /api/products/{id}/sell
func (h *InventoryHandler) SellProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	// A non-numeric id cannot match any product.
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req SellProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Quantity == nil {
		h.respondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	result, err := h.service.Sell(ctx, productID, req.Quantity.Int())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sell product",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()))
		h.respondDomainError(w, err, "Failed to sell product")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product sold successfully",
		"revenue": result.Revenue,
		"product": result.Product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.service.Delete(ctx, productID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()))
		h.respondDomainError(w, err, "Failed to delete product")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// Helper methods

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
func (h *InventoryHandler) respondDomainError(w http.ResponseWriter, err error, fallback string) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		stockErr      *domain.InsufficientStockError
		storageErr    *domain.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		h.respondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &stockErr):
		h.respondError(w, http.StatusBadRequest, "Insufficient stock available")
	case errors.As(err, &notFoundErr):
		h.respondError(w, http.StatusNotFound, "Product not found")
	case errors.As(err, &storageErr):
		h.respondError(w, http.StatusInternalServerError, "Failed to save inventory")
	default:
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}

// Request DTOs

// Number accepts a JSON number or a numeric string and coerces it to a
// float. Clients historically sent form values as strings.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns the coerced float value.
func (n Number) Float() float64 {
	return float64(n)
}

// Int returns the coerced value truncated to an integer.
func (n Number) Int() int {
	return int(n)
}

// CreateProductRequest represents the request body for creating a product.
// The numeric fields are pointers so that a missing field can be told
// apart from an explicit zero: zero is valid, absent is not.
type CreateProductRequest struct {
	Name          string  `json:"name"`
	Quantity      *Number `json:"quantity"`
	PurchasePrice *Number `json:"purchasePrice"`
	SellingPrice  *Number `json:"sellingPrice"`
}

// Validate validates the create product request
func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.NewValidationError("name is required")
	}
	if r.Quantity == nil {
		return domain.NewValidationError("quantity is required")
	}
	if r.PurchasePrice == nil {
		return domain.NewValidationError("purchasePrice is required")
	}
	if r.SellingPrice == nil {
		return domain.NewValidationError("sellingPrice is required")
	}
	return nil
}

// ToParams converts the request to service parameters
func (r *CreateProductRequest) ToParams() ports.CreateParams {
	return ports.CreateParams{
		Name:          strings.TrimSpace(r.Name),
		Quantity:      r.Quantity.Int(),
		PurchasePrice: r.PurchasePrice.Float(),
		SellingPrice:  r.SellingPrice.Float(),
	}
}

// SellProductRequest represents the request body for selling a product
type SellProductRequest struct {
	Quantity *Number `json:"quantity"`
}
