package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Industria-api/internal/application/planning"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Planner   *planning.BuildPlanner
	Report    *planning.ReportUseCase
	Catalog   repository.CatalogRepository
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Plans (protegido)
	planHandler := NewPlanHandler(deps.Planner, deps.Report)
	plans := protected.Group("/plans")
	plans.Post("/", planHandler.CreatePlan)
	plans.Post("/pdf", planHandler.DownloadPlanPDF)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stock.Post("/parse", planHandler.ParseStock)

	// Catálogo (protegido)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	types := protected.Group("/types")
	types.Get("/:id/planetary-inputs", catalogHandler.GetPlanetaryInputs)
}
