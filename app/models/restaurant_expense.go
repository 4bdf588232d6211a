package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantExpense is a persisted expense of the restaurant domain.
// The payroll fields are present if and only if Category is "nomina";
// NewRestaurantExpense enforces that shape.
type RestaurantExpense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category    string             `bson:"categoria" json:"categoria"`
	Description string             `bson:"descripcion" json:"descripcion"`
	Amount      float64            `bson:"monto" json:"monto"`
	Date        time.Time          `bson:"fecha" json:"fecha"`
	Name        string             `bson:"nombre,omitempty" json:"nombre,omitempty"`
	Role        string             `bson:"cargo,omitempty" json:"cargo,omitempty"`
	Salary      *float64           `bson:"salario,omitempty" json:"salario,omitempty"`
	HireDate    *time.Time         `bson:"fecha_ingreso,omitempty" json:"fecha_ingreso,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	AmountFormatted string `bson:"-" json:"monto_formateado,omitempty"`
	SalaryFormatted string `bson:"-" json:"salario_formateado,omitempty"`
}

// ApplyVirtuals fills the formatted fields that exist only in responses.
func (e *RestaurantExpense) ApplyVirtuals() {
	e.AmountFormatted = FormatCOP(e.Amount)
	if e.Category == CategoryNomina && e.Salary != nil {
		e.SalaryFormatted = FormatCOP(*e.Salary)
	}
}

// RestaurantExpenseInput carries the caller-supplied fields of a new
// restaurant expense. The payroll fields are required for the nomina
// category and rejected for any other.
type RestaurantExpenseInput struct {
	Category    string   `json:"categoria" validate:"required,oneof=nomina mercado arriendo_local"`
	Description string   `json:"descripcion" validate:"required,max=500"`
	Amount      *float64 `json:"monto" validate:"required,gte=0"`
	Date        *Fecha   `json:"fecha"`
	Name        string   `json:"nombre" validate:"required_if=Category nomina,excluded_unless=Category nomina"`
	Role        string   `json:"cargo" validate:"required_if=Category nomina,excluded_unless=Category nomina"`
	Salary      *float64 `json:"salario" validate:"required_if=Category nomina,excluded_unless=Category nomina,omitempty,gte=0"`
	HireDate    *Fecha   `json:"fecha_ingreso" validate:"required_if=Category nomina,excluded_unless=Category nomina"`
}

// Normalize trims free-text fields before validation.
func (in *RestaurantExpenseInput) Normalize() {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
}

// FieldErrors returns every violated constraint keyed by wire field name,
// nil when the input is valid.
func (in RestaurantExpenseInput) FieldErrors() map[string]string {
	return fieldErrors(in)
}

// NewRestaurantExpense builds a record from validated input. Payroll fields
// are only carried over for the nomina category, so a stored record can
// never hold them for any other.
func NewRestaurantExpense(in RestaurantExpenseInput, now time.Time) RestaurantExpense {
	fecha := now
	if in.Date != nil && !in.Date.IsZero() {
		fecha = in.Date.Time
	}
	rec := RestaurantExpense{
		Category:    in.Category,
		Description: in.Description,
		Amount:      *in.Amount,
		Date:        fecha,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Category == CategoryNomina {
		rec.Name = in.Name
		rec.Role = in.Role
		salario := *in.Salary
		rec.Salary = &salario
		hireDate := in.HireDate.Time
		rec.HireDate = &hireDate
	}
	return rec
}

// AsInput projects a record back into input form so a merged update can be
// re-validated with the same rules as creation.
func (e RestaurantExpense) AsInput() RestaurantExpenseInput {
	amount := e.Amount
	in := RestaurantExpenseInput{
		Category:    e.Category,
		Description: e.Description,
		Amount:      &amount,
		Name:        e.Name,
		Role:        e.Role,
	}
	if e.Salary != nil {
		salario := *e.Salary
		in.Salary = &salario
	}
	if e.HireDate != nil {
		in.HireDate = &Fecha{Time: *e.HireDate}
	}
	return in
}

// RestaurantExpenseUpdate carries the fields of a partial update.
// Server-managed timestamps are deliberately absent.
type RestaurantExpenseUpdate struct {
	Category    *string  `json:"categoria"`
	Description *string  `json:"descripcion"`
	Amount      *float64 `json:"monto"`
	Date        *Fecha   `json:"fecha"`
	Name        *string  `json:"nombre"`
	Role        *string  `json:"cargo"`
	Salary      *float64 `json:"salario"`
	HireDate    *Fecha   `json:"fecha_ingreso"`
}

// Apply merges the provided fields into an existing record. A category
// change away from nomina drops the payroll fields so the stored shape
// stays determined by the category.
func (u RestaurantExpenseUpdate) Apply(e *RestaurantExpense) {
	if u.Category != nil {
		e.Category = strings.TrimSpace(*u.Category)
	}
	if u.Description != nil {
		e.Description = strings.TrimSpace(*u.Description)
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Date != nil {
		e.Date = u.Date.Time
	}
	if u.Name != nil {
		e.Name = strings.TrimSpace(*u.Name)
	}
	if u.Role != nil {
		e.Role = strings.TrimSpace(*u.Role)
	}
	if u.Salary != nil {
		salario := *u.Salary
		e.Salary = &salario
	}
	if u.HireDate != nil {
		hireDate := u.HireDate.Time
		e.HireDate = &hireDate
	}
	if e.Category != CategoryNomina {
		e.Name = ""
		e.Role = ""
		e.Salary = nil
		e.HireDate = nil
	}
}
