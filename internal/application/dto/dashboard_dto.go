package dto

import "github.com/magazzino-pro/magazzino-api/internal/domain/entity"

// DashboardStatsResponse risposta di GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	TotalWarehouseValue string `json:"total_warehouse_value"` // EUR, decimale canonico
	UnderStockCount     int    `json:"under_stock_count"`
	TotalItemsCount     int    `json:"total_items_count"`
	ZeroStockCount      int    `json:"zero_stock_count"`
}

// NewDashboardStatsResponse converte le statistiche in DTO.
func NewDashboardStatsResponse(stats *entity.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalWarehouseValue: stats.TotalWarehouseValue.Round(2).String(),
		UnderStockCount:     stats.UnderStockCount,
		TotalItemsCount:     stats.TotalItemsCount,
		ZeroStockCount:      stats.ZeroStockCount,
	}
}
