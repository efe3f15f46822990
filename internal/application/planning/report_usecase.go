package planning

import (
	"context"
	"fmt"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
)

// ReportUseCase calcula un plan y genera su representación PDF (lista de
// compras con volúmenes, trabajos a instalar, totales).
type ReportUseCase struct {
	planner   *BuildPlanner
	generator PlanPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(planner *BuildPlanner, generator PlanPDFGenerator) *ReportUseCase {
	return &ReportUseCase{planner: planner, generator: generator}
}

// DownloadPlanPDF planifica y genera el PDF del plan resultante.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - el error del planificador (p.ej. domain.ErrCyclicRecipe) si la
//     planificación falla.
func (uc *ReportUseCase) DownloadPlanPDF(
	ctx context.Context,
	itemsToBuild, openingStock, closingStockTargets []entity.Item,
) (pdfBytes []byte, filename string, err error) {
	plan, _, err := uc.planner.Plan(ctx, itemsToBuild, openingStock, closingStockTargets)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GeneratePlanPDF(ctx, plan)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("plan_%s.pdf", plan.ID())
	return pdfBytes, filename, nil
}
