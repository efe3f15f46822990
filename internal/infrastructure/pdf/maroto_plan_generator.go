// Package pdf implementa la representación gráfica de un plan de fabricación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Plan de fabricación  │  ID + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Materiales a comprar (Cant | Material | Vol m3)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Trabajos (Blueprint | Corridas | Tiempo | EIV)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: trabajos / EIV total / volumen de compra          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/planning"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 45, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPlanGenerator implementa planning.PlanPDFGenerator usando Maroto v2.
type MarotoPlanGenerator struct{}

// NewMarotoPlanGenerator construye el generador.
func NewMarotoPlanGenerator() *MarotoPlanGenerator { return &MarotoPlanGenerator{} }

// GeneratePlanPDF genera el PDF del plan y devuelve sus bytes.
func (g *MarotoPlanGenerator) GeneratePlanPDF(_ context.Context, plan *planning.BuildPlan) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de fabricación", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(plan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Materiales a comprar
	toBuy := plan.PartsToBuy()
	m.AddRows(sectionTitleRow(fmt.Sprintf("MATERIALES A COMPRAR (%d)", len(toBuy))))
	m.AddRows(buyHeaderRow())
	for _, e := range toBuy {
		m.AddRows(buyDetailRow(e))
	}

	// Trabajos a instalar
	jobs := plan.Jobs()
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow(fmt.Sprintf("TRABAJOS A INSTALAR (%d)", len(jobs))))
	m.AddRows(jobHeaderRow())
	for _, job := range jobs {
		m.AddRows(jobDetailRow(job))
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(plan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) e id del plan + fecha (der).
func headerRow(plan *planning.BuildPlan) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(14).Add(
		col.New(7).Add(
			text.New("PLAN DE FABRICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Plan: "+plan.ID().String(), props.Text{
				Size: 7, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func buyHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(2, "Cantidad", align.Right),
		headerCell(5, "Material", align.Left),
		headerCell(3, "Grupo", align.Left),
		headerCell(2, "Vol. (m3)", align.Right),
	)
}

func buyDetailRow(e *entity.InventoryLedgerEntry) core.Row {
	return row.New(5).Add(
		detailCell(2, fmt.Sprintf("%d", e.QuantityToBuy()), align.Right),
		detailCell(5, e.TypeName, align.Left),
		detailCell(3, e.GroupName, align.Left),
		detailCell(2, e.ToBuyVolume().StringFixed(2), align.Right),
	)
}

func jobHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(4, "Blueprint", align.Left),
		headerCell(2, "Corridas", align.Right),
		headerCell(2, "Tiempo/corrida", align.Right),
		headerCell(2, "Salida", align.Right),
		headerCell(2, "EIV", align.Right),
	)
}

func jobDetailRow(job entity.Job) core.Row {
	runTime := time.Duration(job.BaseTimeSeconds) * time.Second
	return row.New(5).Add(
		detailCell(4, job.BlueprintTypeName, align.Left),
		detailCell(2, fmt.Sprintf("%d", job.TotalRunsToInstall), align.Right),
		detailCell(2, runTime.String(), align.Right),
		detailCell(2, fmt.Sprintf("%d", job.OutputQuantity), align.Right),
		detailCell(2, job.EstimatedItemValue.StringFixed(0), align.Right),
	)
}

func totalsRow(plan *planning.BuildPlan) core.Row {
	totalEIV := decimal.Zero
	for _, job := range plan.Jobs() {
		totalEIV = totalEIV.Add(job.EstimatedItemValue)
	}
	totalVolume := decimal.Zero
	for _, e := range plan.PartsToBuy() {
		totalVolume = totalVolume.Add(e.ToBuyVolume())
	}

	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Trabajos: %d   |   EIV total: %s ISK   |   Volumen de compra: %s m3",
				len(plan.Jobs()), totalEIV.StringFixed(0), totalVolume.StringFixed(2),
			), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3}),
		),
	)
}

// ── Celdas ────────────────────────────────────────────────────────────────────

func headerCell(size int, content string, a align.Type) core.Col {
	return col.New(size).Add(
		text.New(content, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1}),
	)
}

func detailCell(size int, content string, a align.Type) core.Col {
	return col.New(size).Add(
		text.New(content, props.Text{Size: 8, Align: a, Top: 1}),
	)
}
