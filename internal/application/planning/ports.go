package planning

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Industria-api/internal/domain/planning"
)

// PriceSource precio ajustado por tipo para el cálculo de EIV (lo implementa
// pricing.PriceCache). Un tipo desconocido o id 0 devuelve precio cero, nunca
// error: un material "gratis/desconocido" no aborta el cálculo.
type PriceSource interface {
	AdjustedPrice(ctx context.Context, typeID int32) (decimal.Decimal, error)
}

// PlanPDFGenerator genera la representación PDF de un plan (lo implementa
// infrastructure/pdf).
type PlanPDFGenerator interface {
	GeneratePlanPDF(ctx context.Context, plan *planning.BuildPlan) ([]byte, error)
}
