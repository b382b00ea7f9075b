package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store struct {
	Mipymes   MipymeRepository
	Units     UnitRepository
	Materials MaterialRepository
	Processes ProcessRepository
	Taxes     TaxRepository
	Products  ProductRepository
	Recipes   RecipeRepository
	Routings  RoutingRepository
	Sales     SaleRepository
}
