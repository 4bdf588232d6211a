package restaurante

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/database"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/models"
)

// nominaInput is the payload of POST /nomina. The expense amount of the
// resulting record is the employee's salary.
type nominaInput struct {
	Name        string        `json:"nombre"`
	Role        string        `json:"cargo"`
	Salary      *float64      `json:"salario"`
	HireDate    *models.Fecha `json:"fecha_ingreso"`
	Description string        `json:"descripcion"`
}

// ListNomina returns the payroll entries, newest hire first, with the total
// payroll amount and its COP-formatted rendering.
func (h *handler) ListNomina(c *fiber.Ctx) error {
	if !h.store.Available() {
		return c.JSON(fiber.Map{
			"success":                 true,
			"count":                   0,
			"empleados":               []models.RestaurantExpense{},
			"total_nomina":            0,
			"total_nomina_formateado": models.FormatCOP(0),
			"message":                 offlineMessage,
		})
	}

	empleados, err := h.store.ListNomina(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error al obtener la nómina",
		})
	}

	var total float64
	for _, e := range empleados {
		if e.Salary != nil {
			total += *e.Salary
		}
	}

	return c.JSON(fiber.Map{
		"success":                 true,
		"count":                   len(empleados),
		"empleados":               empleados,
		"total_nomina":            total,
		"total_nomina_formateado": models.FormatCOP(total),
	})
}

// CreateNomina adds an employee as a nomina-category expense through the
// same validated create path as POST /gastos.
func (h *handler) CreateNomina(c *fiber.Ctx) error {
	in := new(nominaInput)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cuerpo de la petición inválido",
		})
	}

	gastoInput := models.RestaurantExpenseInput{
		Category:    models.CategoryNomina,
		Description: in.Description,
		Amount:      in.Salary,
		Date:        &models.Fecha{Time: time.Now()},
		Name:        in.Name,
		Role:        in.Role,
		Salary:      in.Salary,
		HireDate:    in.HireDate,
	}
	if gastoInput.Description == "" && in.Name != "" {
		gastoInput.Description = "Salario de " + in.Name + " - " + in.Role
	}

	if !h.store.Available() {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":  true,
			"message":  "Empleado agregado a la nómina (modo sin conexión - no persistido)",
			"empleado": simulatedGasto(&gastoInput),
		})
	}

	empleado, err := h.store.CreateRestaurantExpense(c.Context(), gastoInput)
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
			"error":   "Error al agregar el empleado",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Empleado agregado a la nómina",
		"empleado": empleado,
	})
}
