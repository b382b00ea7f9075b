package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mipymes-api/internal/application/costing"
	"github.com/jhoicas/mipymes-api/internal/application/production"
	"github.com/jhoicas/mipymes-api/internal/application/sales"
	"github.com/jhoicas/mipymes-api/internal/application/usecase"
	"github.com/jhoicas/mipymes-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MipymeUC   *usecase.MipymeUseCase
	UnitUC     *usecase.UnitUseCase
	MaterialUC *usecase.MaterialUseCase
	ProcessUC  *usecase.ProcessUseCase
	TaxUC      *usecase.TaxUseCase
	ProductUC  *usecase.ProductUseCase
	RecipeUC   *usecase.RecipeUseCase
	CostingUC  *costing.CostingUseCase
	BatchUC    *production.BatchUseCase
	SaleUC     *sales.SaleUseCase
	Pricing    tenantRecalculator
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Lectura: cualquier rol. Catálogo, costos y configuración: owner.
// Formulación y lotes: owner o producer. Ventas: owner o seller.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	owner := RequireRole(jwt.RoleOwner)
	producer := RequireRole(jwt.RoleOwner, jwt.RoleProducer)
	seller := RequireRole(jwt.RoleOwner, jwt.RoleSeller)
	anyRole := RequireRole(jwt.RoleOwner, jwt.RoleProducer, jwt.RoleSeller)

	// Companies (público: alta de la mipyme)
	companyHandler := NewCompanyHandler(deps.MipymeUC)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)

	settings := protected.Group("/settings")
	settings.Get("/", companyHandler.Settings)
	settings.Put("/production", owner, companyHandler.UpdateProduction)

	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Post("/", owner, unitHandler.Create)

	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", owner, materialHandler.Create)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", owner, materialHandler.Update)
	materials.Delete("/:id", owner, materialHandler.Delete)
	materials.Post("/:id/restock", producer, materialHandler.Restock)

	processes := protected.Group("/processes")
	processHandler := NewProcessHandler(deps.ProcessUC)
	processes.Get("/", processHandler.List)
	processes.Post("/", owner, processHandler.Create)
	processes.Get("/:id", processHandler.GetByID)
	processes.Put("/:id", owner, processHandler.Update)
	processes.Delete("/:id", owner, processHandler.Delete)

	taxes := protected.Group("/taxes")
	taxHandler := NewTaxHandler(deps.TaxUC)
	taxes.Get("/", taxHandler.List)
	taxes.Post("/", owner, taxHandler.Create)
	taxes.Get("/:id", taxHandler.GetByID)
	taxes.Put("/:id", owner, taxHandler.Update)
	taxes.Patch("/:id/active", owner, taxHandler.SetActive)
	taxes.Delete("/:id", owner, taxHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CostingUC)
	products.Get("/", productHandler.List)
	products.Post("/", owner, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", owner, productHandler.Update)
	products.Delete("/:id", owner, productHandler.Delete)
	products.Get("/:id/standards", productHandler.GetStandards)
	products.Put("/:id/standards", owner, productHandler.SetStandards)
	products.Get("/:id/costing", productHandler.Costing)

	products.Get("/:id/taxes", taxHandler.ListByProduct)
	products.Post("/:id/taxes/:taxId", owner, taxHandler.Assign)
	products.Delete("/:id/taxes/:taxId", owner, taxHandler.Unassign)

	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	products.Get("/:id/recipe", recipeHandler.ListRecipe)
	products.Post("/:id/recipe", producer, recipeHandler.AddRecipeLine)
	products.Put("/:id/recipe/:lineId", producer, recipeHandler.UpdateRecipeLine)
	products.Delete("/:id/recipe/:lineId", producer, recipeHandler.RemoveRecipeLine)
	products.Get("/:id/routing", recipeHandler.ListRouting)
	products.Post("/:id/routing", producer, recipeHandler.AddRoutingStep)
	products.Put("/:id/routing/:stepId", producer, recipeHandler.UpdateRoutingStep)
	products.Delete("/:id/routing/:stepId", producer, recipeHandler.RemoveRoutingStep)

	batchHandler := NewBatchHandler(deps.BatchUC)
	products.Get("/:id/batches/plan", batchHandler.Plan)
	products.Post("/:id/batches", producer, batchHandler.Execute)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", seller, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.ReceiptPDF)

	pricing := protected.Group("/pricing")
	pricing.Post("/recalculate", owner, NewPricingHandler(deps.Pricing).Recalculate)
}
