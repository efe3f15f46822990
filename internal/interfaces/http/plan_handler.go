package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Industria-api/internal/application/dto"
	"github.com/jhoicas/Industria-api/internal/application/planning"
	"github.com/jhoicas/Industria-api/internal/domain"
)

// PlanHandler maneja las peticiones HTTP de planificación (protegido).
type PlanHandler struct {
	planner *planning.BuildPlanner
	report  *planning.ReportUseCase
}

// NewPlanHandler construye el handler.
func NewPlanHandler(planner *planning.BuildPlanner, report *planning.ReportUseCase) *PlanHandler {
	return &PlanHandler{planner: planner, report: report}
}

// validatePlanRequest valida el cuerpo de una petición de plan.
func validatePlanRequest(in dto.PlanRequest) (code, message string) {
	if len(in.ItemsToBuild) == 0 {
		return "VALIDATION", "items_to_build no puede estar vacío"
	}
	for _, lists := range [][]dto.ItemRequest{in.ItemsToBuild, in.OpeningStock, in.ClosingStockTargets} {
		for _, it := range lists {
			if it.TypeID <= 0 && it.TypeName == "" {
				return "VALIDATION", "cada item requiere type_id o type_name"
			}
			if it.Quantity < 0 {
				return "VALIDATION", "quantity no puede ser negativa"
			}
			if it.MaterialEfficiency < 0 || it.MaterialEfficiency > 100 {
				return "VALIDATION", "material_efficiency debe estar en [0,100]"
			}
		}
	}
	return "", ""
}

// CreatePlan godoc
// @Summary      Calcular un plan de fabricación
// @Description  Expande la lista de items a fabricar contra el stock de apertura,
//
//	resuelve los trabajos a instalar con su EIV y reconcilia los
//	objetivos de stock de cierre.
//
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanRequest  true  "items_to_build, opening_stock, closing_stock_targets"
// @Success      200   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/plans [post]
func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if code, msg := validatePlanRequest(in); code != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}

	plan, rejected, err := h.planner.Plan(c.Context(), dto.Items(in.ItemsToBuild), dto.Items(in.OpeningStock), dto.Items(in.ClosingStockTargets))
	if err != nil {
		if errors.Is(err, domain.ErrCyclicRecipe) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CYCLIC_RECIPE", Message: "la receta contiene un ciclo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.FromBuildPlan(plan, rejected))
}

// DownloadPlanPDF godoc
// @Summary      Calcular un plan y descargarlo como PDF
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.PlanRequest  true  "items_to_build, opening_stock, closing_stock_targets"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/plans/pdf [post]
func (h *PlanHandler) DownloadPlanPDF(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if code, msg := validatePlanRequest(in); code != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}

	pdfBytes, filename, err := h.report.DownloadPlanPDF(c.Context(), dto.Items(in.ItemsToBuild), dto.Items(in.OpeningStock), dto.Items(in.ClosingStockTargets))
	if err != nil {
		if errors.Is(err, domain.ErrCyclicRecipe) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CYCLIC_RECIPE", Message: "la receta contiene un ciclo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ParseStock godoc
// @Summary      Parsear stock pegado desde el portapapeles del juego
// @Description  Acepta texto plano con líneas "Nombre<TAB>Cantidad" (o solo el
//
//	nombre, cantidad 1) y devuelve los items reconocidos.
//
// @Tags         stock
// @Security     Bearer
// @Accept       text/plain
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/parse [post]
func (h *PlanHandler) ParseStock(c *fiber.Ctx) error {
	items := planning.ParseStockText(string(c.Body()))

	out := make([]dto.ItemRequest, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemRequest{TypeName: it.TypeName, Quantity: it.Quantity})
	}
	return c.JSON(fiber.Map{
		"total": len(out),
		"items": out,
	})
}
