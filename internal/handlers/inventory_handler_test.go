// internal/handlers/inventory_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/handlers"
	"github.com/Ritesh-Bote/inventory-app-backend/test/helpers"
	"github.com/Ritesh-Bote/inventory-app-backend/test/mocks"
)

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(body, &response))
	return response
}

func TestInventoryHandler_ListProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	state := domain.NewInventoryState()
	state.Products = append(state.Products, *helpers.CreateTestProduct())
	state.TotalRevenue = 20.0

	mockService := mocks.NewMockInventoryService(ctrl)
	mockService.EXPECT().List(gomock.Any()).Return(state, nil)

	handler := handlers.NewInventoryHandler(mockService, helpers.TestLogger())

	req := httptest.NewRequest("GET", "/api/products", nil)
	w := httptest.NewRecorder()

	handler.ListProducts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response domain.InventoryState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Products, 1)
	assert.Equal(t, "Test Widget", response.Products[0].Name)
	assert.Equal(t, 20.0, response.TotalRevenue)
}

func TestInventoryHandler_CreateProduct(t *testing.T) {
	created := helpers.CreateTestProduct()

	tests := []struct {
		name            string
		body            string
		setupMocks      func(*mocks.MockInventoryService)
		expectedStatus  int
		expectedMessage string
		validateBody    func(*testing.T, map[string]any)
	}{
		{
			name: "creates_product_from_numeric_fields",
			body: `{"name":"Test Widget","quantity":10,"purchasePrice":2.5,"sellingPrice":5}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Create(gomock.Any(), ports.CreateParams{
						Name:          "Test Widget",
						Quantity:      10,
						PurchasePrice: 2.5,
						SellingPrice:  5.0,
					}).
					Return(created, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Product added successfully",
			validateBody: func(t *testing.T, response map[string]any) {
				assert.Equal(t, true, response["success"])
				product, ok := response["product"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "Test Widget", product["name"])
				assert.Equal(t, float64(10), product["quantity"])
			},
		},
		{
			name: "coerces_numeric_strings",
			body: `{"name":"Test Widget","quantity":"10","purchasePrice":"2.5","sellingPrice":"5"}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Create(gomock.Any(), ports.CreateParams{
						Name:          "Test Widget",
						Quantity:      10,
						PurchasePrice: 2.5,
						SellingPrice:  5.0,
					}).
					Return(created, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Product added successfully",
		},
		{
			name: "zero_values_are_valid",
			body: `{"name":"Freebie","quantity":0,"purchasePrice":0,"sellingPrice":0}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Create(gomock.Any(), ports.CreateParams{Name: "Freebie"}).
					Return(created, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Product added successfully",
		},
		{
			name:            "missing_name_rejected",
			body:            `{"quantity":10,"purchasePrice":2.5,"sellingPrice":5}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "name is required",
		},
		{
			name:            "blank_name_rejected",
			body:            `{"name":"   ","quantity":10,"purchasePrice":2.5,"sellingPrice":5}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "name is required",
		},
		{
			name:            "missing_quantity_rejected",
			body:            `{"name":"Test Widget","purchasePrice":2.5,"sellingPrice":5}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "quantity is required",
		},
		{
			name:            "missing_purchase_price_rejected",
			body:            `{"name":"Test Widget","quantity":10,"sellingPrice":5}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "purchasePrice is required",
		},
		{
			name:            "missing_selling_price_rejected",
			body:            `{"name":"Test Widget","quantity":10,"purchasePrice":2.5}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "sellingPrice is required",
		},
		{
			name:            "non_numeric_quantity_rejected",
			body:            `{"name":"Test Widget","quantity":"lots","purchasePrice":2.5,"sellingPrice":5}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name:            "malformed_json_rejected",
			body:            `{"name": `,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name: "storage_failure_returns_500",
			body: `{"name":"Test Widget","quantity":10,"purchasePrice":2.5,"sellingPrice":5}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, &domain.StorageError{Op: "save"})
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Failed to save inventory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewInventoryHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("POST", "/api/products", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateProduct(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeBody(t, w.Body.Bytes())
			assert.Equal(t, tt.expectedMessage, response["message"])
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, false, response["success"])
			}
			if tt.validateBody != nil {
				tt.validateBody(t, response)
			}
		})
	}
}

func TestInventoryHandler_SellProduct(t *testing.T) {
	sold := helpers.CreateTestProduct(func(p *domain.Product) {
		p.Quantity = 6
		p.SoldQuantity = 4
	})

	tests := []struct {
		name            string
		productID       string
		body            string
		setupMocks      func(*mocks.MockInventoryService)
		expectedStatus  int
		expectedMessage string
		validateBody    func(*testing.T, map[string]any)
	}{
		{
			name:      "successful_sale",
			productID: "1700000000000",
			body:      `{"quantity":4}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Sell(gomock.Any(), int64(1700000000000), 4).
					Return(&ports.SellResult{Revenue: 20.0, Product: sold}, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Product sold successfully",
			validateBody: func(t *testing.T, response map[string]any) {
				assert.Equal(t, true, response["success"])
				assert.Equal(t, 20.0, response["revenue"])
				product, ok := response["product"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(6), product["quantity"])
				assert.Equal(t, float64(4), product["soldQuantity"])
			},
		},
		{
			name:      "quantity_as_string_coerced",
			productID: "1700000000000",
			body:      `{"quantity":"4"}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Sell(gomock.Any(), int64(1700000000000), 4).
					Return(&ports.SellResult{Revenue: 20.0, Product: sold}, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Product sold successfully",
		},
		{
			name:            "non_numeric_id_not_found",
			productID:       "abc",
			body:            `{"quantity":1}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:            "missing_quantity_rejected",
			productID:       "1700000000000",
			body:            `{}`,
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "quantity is required",
		},
		{
			name:      "zero_quantity_rejected_by_service",
			productID: "1700000000000",
			body:      `{"quantity":0}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Sell(gomock.Any(), int64(1700000000000), 0).
					Return(nil, domain.NewValidationError("quantity must be a positive number"))
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "quantity must be a positive number",
		},
		{
			name:      "insufficient_stock",
			productID: "1700000000000",
			body:      `{"quantity":11}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Sell(gomock.Any(), int64(1700000000000), 11).
					Return(nil, &domain.InsufficientStockError{
						ProductID: 1700000000000,
						Requested: 11,
						Available: 10,
					})
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Insufficient stock available",
		},
		{
			name:      "unknown_product_not_found",
			productID: "999",
			body:      `{"quantity":1}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Sell(gomock.Any(), int64(999), 1).
					Return(nil, &domain.NotFoundError{ID: 999})
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:      "storage_failure_returns_500",
			productID: "1700000000000",
			body:      `{"quantity":1}`,
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Sell(gomock.Any(), int64(1700000000000), 1).
					Return(nil, &domain.StorageError{Op: "save"})
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Failed to save inventory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewInventoryHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("PUT", "/api/products/"+tt.productID+"/sell",
				bytes.NewBufferString(tt.body))
			req.SetPathValue("id", tt.productID)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.SellProduct(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeBody(t, w.Body.Bytes())
			assert.Equal(t, tt.expectedMessage, response["message"])
			if tt.validateBody != nil {
				tt.validateBody(t, response)
			}
		})
	}
}

func TestInventoryHandler_DeleteProduct(t *testing.T) {
	tests := []struct {
		name            string
		productID       string
		setupMocks      func(*mocks.MockInventoryService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:      "successful_delete",
			productID: "1700000000000",
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Delete(gomock.Any(), int64(1700000000000)).
					Return(nil)
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Product deleted successfully",
		},
		{
			name:            "non_numeric_id_not_found",
			productID:       "abc",
			setupMocks:      func(m *mocks.MockInventoryService) {},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:      "unknown_product_not_found",
			productID: "999",
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Delete(gomock.Any(), int64(999)).
					Return(&domain.NotFoundError{ID: 999})
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:      "storage_failure_returns_500",
			productID: "1700000000000",
			setupMocks: func(m *mocks.MockInventoryService) {
				m.EXPECT().
					Delete(gomock.Any(), int64(1700000000000)).
					Return(&domain.StorageError{Op: "save"})
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Failed to save inventory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewInventoryHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("DELETE", "/api/products/"+tt.productID, nil)
			req.SetPathValue("id", tt.productID)
			w := httptest.NewRecorder()

			handler.DeleteProduct(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeBody(t, w.Body.Bytes())
			assert.Equal(t, tt.expectedMessage, response["message"])
		})
	}
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      float64
		wantError bool
	}{
		{name: "plain_number", input: `5`, want: 5},
		{name: "decimal_number", input: `2.5`, want: 2.5},
		{name: "numeric_string", input: `"10"`, want: 10},
		{name: "decimal_string", input: `"2.5"`, want: 2.5},
		{name: "string_with_spaces", input: `" 7 "`, want: 7},
		{name: "zero", input: `0`, want: 0},
		{name: "non_numeric_string", input: `"lots"`, wantError: true},
		{name: "empty_string", input: `""`, wantError: true},
		{name: "boolean", input: `true`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n handlers.Number
			err := json.Unmarshal([]byte(tt.input), &n)

			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Float())
		})
	}
}
