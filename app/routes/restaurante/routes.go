package restaurante

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/database"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/models"
)

// Store is the slice of the persistence layer the restaurante handlers use.
// *database.Store satisfies it; tests inject an in-memory fake.
type Store interface {
	Available() bool
	ListRestaurantExpenses(ctx context.Context, f database.RestaurantExpenseFilter) ([]models.RestaurantExpense, error)
	GetRestaurantExpense(ctx context.Context, id string) (*models.RestaurantExpense, error)
	CreateRestaurantExpense(ctx context.Context, in models.RestaurantExpenseInput) (*models.RestaurantExpense, error)
	UpdateRestaurantExpense(ctx context.Context, id string, upd models.RestaurantExpenseUpdate) (*models.RestaurantExpense, error)
	DeleteRestaurantExpense(ctx context.Context, id string) (*models.RestaurantExpense, error)
	ListNomina(ctx context.Context) ([]models.RestaurantExpense, error)
}

// SetupRestauranteRoutes mounts the restaurant domain under /api/restaurante.
func SetupRestauranteRoutes(app *fiber.App, store Store) {
	h := &handler{store: store}

	api := app.Group("/api/restaurante")
	api.Get("/", h.Index)
	api.Get("/gastos", h.ListGastos)
	api.Post("/gastos", h.CreateGasto)
	api.Get("/gastos/:id", h.GetGasto)
	api.Put("/gastos/:id", h.UpdateGasto)
	api.Delete("/gastos/:id", h.DeleteGasto)
	api.Get("/categorias", h.ListCategorias)
	api.Get("/nomina", h.ListNomina)
	api.Post("/nomina", h.CreateNomina)
}
