package eventos

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/database"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/models"
)

// Store is the slice of the persistence layer the eventos handlers use.
// *database.Store satisfies it; tests inject an in-memory fake.
type Store interface {
	Available() bool
	ListEventExpenses(ctx context.Context, f database.EventExpenseFilter) ([]models.EventExpense, error)
	GetEventExpense(ctx context.Context, id string) (*models.EventExpense, error)
	CreateEventExpense(ctx context.Context, in models.EventExpenseInput) (*models.EventExpense, error)
	UpdateEventExpense(ctx context.Context, id string, upd models.EventExpenseUpdate) (*models.EventExpense, error)
	DeleteEventExpense(ctx context.Context, id string) (*models.EventExpense, error)
}

// SetupEventosRoutes mounts the events domain under /api/eventos.
func SetupEventosRoutes(app *fiber.App, store Store) {
	h := &handler{store: store}

	api := app.Group("/api/eventos")
	api.Get("/", h.Index)
	api.Get("/gastos", h.ListGastos)
	api.Post("/gastos", h.CreateGasto)
	api.Get("/gastos/:id", h.GetGasto)
	api.Put("/gastos/:id", h.UpdateGasto)
	api.Delete("/gastos/:id", h.DeleteGasto)
	api.Get("/categorias", h.ListCategorias)
}
