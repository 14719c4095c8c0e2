package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ChangeNotifier difunde eventos a los clientes conectados en tiempo real.
// La entrega es best-effort: Broadcast nunca devuelve error al llamador.
type ChangeNotifier interface {
	Broadcast(ctx context.Context, event entity.ChangeEvent)
}

// StockReportGenerator genera el reporte de existencias (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, products []*entity.Product, generatedBy string, generatedAt time.Time) ([]byte, error)
}

// MutationObserver recibe una notificación por cada alta, cambio o baja de producto (métricas).
type MutationObserver func(operation string)
