// internal/handlers/export.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
)

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	Products []domain.Product `json:"products"`
	Metadata ExportMetadata   `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate    time.Time `json:"export_date"`
	TotalProducts int       `json:"total_products"`
	TotalRevenue  float64   `json:"total_revenue"`
}

// ExportHandler handles export operations
type ExportHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.InventoryService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load inventory for export",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(state)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("inventory_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "excel export completed",
		slog.Int("total_rows", len(state.Products)),
		slog.String("filename", filename))
}

// ExportJSON handles GET /api/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load inventory for export",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	response := JSONExportResponse{
		Products: state.Products,
		Metadata: ExportMetadata{
			ExportDate:    time.Now(),
			TotalProducts: len(state.Products),
			TotalRevenue:  state.TotalRevenue,
		},
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal export response",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))

	if _, err := w.Write(responseData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write JSON response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "json export completed",
		slog.Int("total_rows", len(state.Products)))
}

// generateExcelFile creates an Excel workbook in memory from the state
func (h *ExportHandler) generateExcelFile(state *domain.InventoryState) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"ID", "Name", "Quantity", "Purchase Price", "Selling Price",
		"Sold Quantity", "Created At",
	}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}

	for _, p := range state.Products {
		dataRow := sheet.AddRow()
		dataRow.AddCell().SetInt64(p.ID)
		dataRow.AddCell().Value = p.Name
		dataRow.AddCell().SetInt(p.Quantity)
		dataRow.AddCell().SetFloat(p.PurchasePrice)
		dataRow.AddCell().SetFloat(p.SellingPrice)
		dataRow.AddCell().SetInt(p.SoldQuantity)
		dataRow.AddCell().Value = p.CreatedAt.Format(time.RFC3339)
	}

	// Totals row at the bottom
	totalsRow := sheet.AddRow()
	totalsCell := totalsRow.AddCell()
	totalsCell.Value = "Total Revenue"
	totalsCell.GetStyle().Font.Bold = true
	totalsRow.AddCell().SetFloat(state.TotalRevenue)

	for i := 0; i < len(headers); i++ {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func (h *ExportHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	}); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}
