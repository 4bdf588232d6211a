package eventos

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
		"message": "Módulo de Eventos - Liliana Villamarin",
		"endpoints": []string{
			"GET /gastos - Lista todos los gastos de eventos",
			"POST /gastos - Crear nuevo gasto",
			"GET /gastos/:id - Obtener gasto específico",
			"PUT /gastos/:id - Actualizar gasto",
			"DELETE /gastos/:id - Eliminar gasto",
			"GET /categorias - Lista categorías de gastos",
		},
	})
}

// ListGastos returns event expenses filtered by categoria, evento_id and
// an inclusive date range, newest first.
func (h *handler) ListGastos(c *fiber.Ctx) error {
	if !h.store.Available() {
		return c.JSON(fiber.Map{
			"success":    true,
			"count":      0,
			"gastos":     []models.EventExpense{},
			"categorias": models.EventCategoryIDs(),
			"message":    offlineMessage,
		})
	}

	filter := database.EventExpenseFilter{
		Category: c.Query("categoria"),
		EventID:  c.Query("evento_id"),
	}
	var err error
	filter.DateFrom, filter.DateTo, err = parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Formato de fecha inválido",
		})
	}

	gastos, err := h.store.ListEventExpenses(c.Context(), filter)
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
		"categorias": models.EventCategoryIDs(),
	})
}

// CreateGasto persists a new event expense. When the store is unreachable
// it answers with a simulated, non-persisted record instead of failing.
func (h *handler) CreateGasto(c *fiber.Ctx) error {
	in := new(models.EventExpenseInput)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cuerpo de la petición inválido",
		})
	}

	if !h.store.Available() {
		now := time.Now()
		fecha := now
		if in.Date != nil && !in.Date.IsZero() {
			fecha = in.Date.Time
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Gasto creado exitosamente (modo sin conexión - no persistido)",
			"gasto": fiber.Map{
				"_id":         simulatedID(),
				"categoria":   in.Category,
				"descripcion": in.Description,
				"monto":       in.Amount,
				"fecha":       fecha,
				"evento_id":   in.EventID,
				"createdAt":   now,
				"updatedAt":   now,
			},
		})
	}

	gasto, err := h.store.CreateEventExpense(c.Context(), *in)
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
		"message": "Gasto creado exitosamente",
		"gasto":   gasto,
	})
}

// GetGasto returns one event expense by id. Offline, only ids of simulated
// records resolve, to a placeholder.
func (h *handler) GetGasto(c *fiber.Ctx) error {
	id := c.Params("id")

	if !h.store.Available() {
		if strings.HasPrefix(id, "simulated-") {
			now := time.Now()
			return c.JSON(fiber.Map{
				"success": true,
				"gasto": fiber.Map{
					"_id":         id,
					"categoria":   "comida",
					"descripcion": "Registro simulado (modo sin conexión)",
					"monto":       0,
					"fecha":       now,
					"evento_id":   "",
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

	gasto, err := h.store.GetEventExpense(c.Context(), id)
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
	upd := new(models.EventExpenseUpdate)
	if err := c.BodyParser(upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cuerpo de la petición inválido",
		})
	}

	gasto, err := h.store.UpdateEventExpense(c.Context(), c.Params("id"), *upd)
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
	gasto, err := h.store.DeleteEventExpense(c.Context(), c.Params("id"))
	if err != nil {
		return gastoError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Gasto eliminado exitosamente",
		"gasto":   gasto,
	})
}

// ListCategorias returns the static category registry of the events domain.
func (h *handler) ListCategorias(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categorias": models.EventCategories,
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

func simulatedID() string {
	return "simulated-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
