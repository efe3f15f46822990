package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Industria-api/internal/application/dto"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// CatalogHandler maneja las consultas de catálogo (protegido).
type CatalogHandler struct {
	catalog repository.CatalogRepository
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(catalog repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetPlanetaryInputs godoc
// @Summary      Entradas del esquema planetario de un tipo
// @Description  Devuelve los tipos de entrada del esquema de industria planetaria
//
//	que produce el tipo indicado. Lista vacía si el tipo no es un
//	producto planetario.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "type_id del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/types/{id}/planetary-inputs [get]
func (h *CatalogHandler) GetPlanetaryInputs(c *fiber.Ctx) error {
	typeID, err := c.ParamsInt("id")
	if err != nil || typeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}

	info, err := h.catalog.GetItem(c.Context(), int32(typeID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if info == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo no encontrado"})
	}

	inputIDs, err := h.catalog.SchematicInputs(c.Context(), int32(typeID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	inputs := make([]dto.TypeInfoDTO, 0, len(inputIDs))
	for _, id := range inputIDs {
		in, err := h.catalog.GetItem(c.Context(), id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if in == nil {
			continue
		}
		inputs = append(inputs, dto.FromTypeInfo(in))
	}

	return c.JSON(fiber.Map{
		"type":   dto.FromTypeInfo(info),
		"inputs": inputs,
	})
}
