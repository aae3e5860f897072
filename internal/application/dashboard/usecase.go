// Package dashboard expone las métricas agregadas de la pantalla principal.
package dashboard

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// UseCase consultas agregadas de solo lectura.
type UseCase struct {
	analytics repository.AnalyticsRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso del dashboard.
func NewUseCase(analytics repository.AnalyticsRepository, log *logger.Logger) *UseCase {
	return &UseCase{analytics: analytics, log: log}
}

// Metrics métricas globales: pedidos, ingresos de pedidos completados,
// clientes y existencias bajo el umbral de reposición.
func (uc *UseCase) Metrics(ctx context.Context) (*dto.DashboardResponse, error) {
	m, err := uc.analytics.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalOrders:    m.TotalOrders,
		TotalRevenue:   m.TotalRevenue.StringFixed(2),
		TotalCustomers: m.TotalCustomers,
		LowStockCount:  m.LowStockCount,
	}, nil
}

// TopSalesmen ranking de vendedores por ventas completadas.
func (uc *UseCase) TopSalesmen(ctx context.Context, limit int) ([]dto.SalesmanRankResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	ranks, err := uc.analytics.TopSalesmen(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesmanRankResponse, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, dto.SalesmanRankResponse{
			PersonID:   r.PersonID,
			Name:       r.Name,
			OrderCount: r.OrderCount,
			TotalSales: r.TotalSales.StringFixed(2),
		})
	}
	return out, nil
}

// ForSalesman métricas del vendedor autenticado.
func (uc *UseCase) ForSalesman(ctx context.Context, salesmanID string) (*dto.SalesmanMetricsResponse, error) {
	m, err := uc.analytics.ForSalesman(ctx, salesmanID)
	if err != nil {
		return nil, err
	}
	return &dto.SalesmanMetricsResponse{
		TotalOrders:   m.TotalOrders,
		TotalSales:    m.TotalSales.StringFixed(2),
		CustomerCount: m.CustomerCount,
	}, nil
}
