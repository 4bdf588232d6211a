package restaurante

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/database"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/models"
)

const offlineMessage = "Base de datos no disponible - funcionando en modo sin conexión"

type handler struct {
	store Store
}

// Index returns the module summary and its endpoint list.
func (h *handler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Módulo de Restaurante - Liliana Villamarin",
		"endpoints": []string{
			"GET /gastos - Lista todos los gastos del restaurante",
			"POST /gastos - Crear nuevo gasto",
			"GET /gastos/:id - Obtener gasto específico",
			"PUT /gastos/:id - Actualizar gasto",
			"DELETE /gastos/:id - Eliminar gasto",
			"GET /categorias - Lista categorías de gastos",
			"GET /nomina - Gestión de nómina",
			"POST /nomina - Agregar empleado a nómina",
		},
	})
}

// ListGastos returns restaurant expenses filtered by categoria and an
// inclusive date range, newest first.
func (h *handler) ListGastos(c *fiber.Ctx) error {
	if !h.store.Available() {
		return c.JSON(fiber.Map{
			"success":    true,
			"count":      0,
			"gastos":     []models.RestaurantExpense{},
			"categorias": models.RestaurantCategoryIDs(),
			"message":    offlineMessage,
		})
	}

	filter := database.RestaurantExpenseFilter{
		Category: c.Query("categoria"),
	}
	var err error
	filter.DateFrom, filter.DateTo, err = parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Formato de fecha inválido",
		})
	}

	gastos, err := h.store.ListRestaurantExpenses(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error al obtener los gastos",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(gastos),
		"gastos":     gastos,
		"categorias": models.RestaurantCategoryIDs(),
	})
}

// CreateGasto persists a new restaurant expense. When the store is
// unreachable it answers with a simulated, non-persisted record.
func (h *handler) CreateGasto(c *fiber.Ctx) error {
	in := new(models.RestaurantExpenseInput)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cuerpo de la petición inválido",
		})
	}

	if !h.store.Available() {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Gasto del restaurante creado exitosamente (modo sin conexión - no persistido)",
			"gasto":   simulatedGasto(in),
		})
	}

	gasto, err := h.store.CreateRestaurantExpense(c.Context(), *in)
	var verr *database.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"error":    "Datos inválidos",
			"detalles": verr.Fields,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error al crear el gasto",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Gasto del restaurante creado exitosamente",
		"gasto":   gasto,
	})
}

// GetGasto returns one restaurant expense by id. Offline, only ids of
// simulated records resolve, to a placeholder.
func (h *handler) GetGasto(c *fiber.Ctx) error {
	id := c.Params("id")

	if !h.store.Available() {
		if strings.HasPrefix(id, "simulated-") {
			now := time.Now()
			return c.JSON(fiber.Map{
				"success": true,
				"gasto": fiber.Map{
					"_id":         id,
					"categoria":   "mercado",
					"descripcion": "Registro simulado (modo sin conexión)",
					"monto":       0,
					"fecha":       now,
					"createdAt":   now,
					"updatedAt":   now,
				},
				"message": offlineMessage,
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Gasto no encontrado",
		})
	}

	gasto, err := h.store.GetRestaurantExpense(c.Context(), id)
	if err != nil {
		return gastoError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"gasto":   gasto,
	})
}

// UpdateGasto merges the provided fields into an existing expense. There is
// no offline fallback for updates.
func (h *handler) UpdateGasto(c *fiber.Ctx) error {
	upd := new(models.RestaurantExpenseUpdate)
	if err := c.BodyParser(upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cuerpo de la petición inválido",
		})
	}

	gasto, err := h.store.UpdateRestaurantExpense(c.Context(), c.Params("id"), *upd)
	if err != nil {
		return gastoError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Gasto actualizado exitosamente",
		"gasto":   gasto,
	})
}

// DeleteGasto removes an expense and returns the deleted record. There is
// no offline fallback for deletes.
func (h *handler) DeleteGasto(c *fiber.Ctx) error {
	gasto, err := h.store.DeleteRestaurantExpense(c.Context(), c.Params("id"))
	if err != nil {
		return gastoError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Gasto eliminado exitosamente",
		"gasto":   gasto,
	})
}

// ListCategorias returns the static category registry of the restaurant
// domain.
func (h *handler) ListCategorias(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categorias": models.RestaurantCategories,
	})
}

// gastoError maps store errors onto the HTTP taxonomy.
func gastoError(c *fiber.Ctx, err error) error {
	var verr *database.ValidationError
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "ID inválido",
		})
	case errors.Is(err, database.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Gasto no encontrado",
		})
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"error":    "Datos inválidos",
			"detalles": verr.Fields,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error interno del servidor",
		})
	}
}

func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if v := c.Query("fecha_inicio"); v != "" {
		t, perr := models.ParseFecha(v)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if v := c.Query("fecha_fin"); v != "" {
		t, perr := models.ParseFecha(v)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

// simulatedGasto echoes the submitted fields back as a fake record, the way
// the offline mode answers creations.
func simulatedGasto(in *models.RestaurantExpenseInput) fiber.Map {
	now := time.Now()
	fecha := now
	if in.Date != nil && !in.Date.IsZero() {
		fecha = in.Date.Time
	}
	gasto := fiber.Map{
		"_id":         simulatedID(),
		"categoria":   in.Category,
		"descripcion": in.Description,
		"monto":       in.Amount,
		"fecha":       fecha,
		"createdAt":   now,
		"updatedAt":   now,
	}
	if in.Name != "" {
		gasto["nombre"] = in.Name
	}
	if in.Role != "" {
		gasto["cargo"] = in.Role
	}
	if in.Salary != nil {
		gasto["salario"] = *in.Salary
	}
	if in.HireDate != nil {
		gasto["fecha_ingreso"] = in.HireDate.Time
	}
	return gasto
}

func simulatedID() string {
	return "simulated-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
