package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ReportUseCase reporte de existencias de los productos activos.
type ReportUseCase struct {
	repo      repository.ProductRepository
	generator StockReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ProductRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, generator: generator, now: time.Now}
}

// StockPDF genera el PDF con las existencias actuales (solo administrador).
func (uc *ReportUseCase) StockPDF(ctx context.Context, actor entity.Actor) ([]byte, error) {
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockReport(ctx, list, actor.Username, uc.now())
}
