package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventExpense is a persisted expense of the events domain.
type EventExpense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category    string             `bson:"categoria" json:"categoria"`
	Description string             `bson:"descripcion" json:"descripcion"`
	Amount      float64            `bson:"monto" json:"monto"`
	Date        time.Time          `bson:"fecha" json:"fecha"`
	EventID     string             `bson:"evento_id" json:"evento_id"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Serialization-only, recomputed on every read.
	AmountFormatted string `bson:"-" json:"monto_formateado,omitempty"`
}

// ApplyVirtuals fills the formatted fields that exist only in responses.
func (e *EventExpense) ApplyVirtuals() {
	e.AmountFormatted = FormatCOP(e.Amount)
}

// EventExpenseInput carries the caller-supplied fields of a new event expense.
type EventExpenseInput struct {
	Category    string   `json:"categoria" validate:"required,oneof=comida meseros paquetes bebidas transporte auxiliares_cocina decoracion lenceria musica arriendo_bodega"`
	Description string   `json:"descripcion" validate:"required,max=500"`
	Amount      *float64 `json:"monto" validate:"required,gte=0"`
	Date        *Fecha   `json:"fecha"`
	EventID     string   `json:"evento_id" validate:"required"`
}

// Normalize trims free-text fields before validation.
func (in *EventExpenseInput) Normalize() {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.EventID = strings.TrimSpace(in.EventID)
}

// FieldErrors returns every violated constraint keyed by wire field name,
// nil when the input is valid.
func (in EventExpenseInput) FieldErrors() map[string]string {
	return fieldErrors(in)
}

// NewEventExpense builds a record from validated input. The date defaults
// to now when absent; timestamps are server-assigned.
func NewEventExpense(in EventExpenseInput, now time.Time) EventExpense {
	fecha := now
	if in.Date != nil && !in.Date.IsZero() {
		fecha = in.Date.Time
	}
	return EventExpense{
		Category:    in.Category,
		Description: in.Description,
		Amount:      *in.Amount,
		Date:        fecha,
		EventID:     in.EventID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AsInput projects a record back into input form so a merged update can be
// re-validated with the same rules as creation.
func (e EventExpense) AsInput() EventExpenseInput {
	amount := e.Amount
	return EventExpenseInput{
		Category:    e.Category,
		Description: e.Description,
		Amount:      &amount,
		EventID:     e.EventID,
	}
}

// EventExpenseUpdate carries the fields of a partial update. Timestamps are
// deliberately absent: callers can never override the server-managed ones.
type EventExpenseUpdate struct {
	Category    *string  `json:"categoria"`
	Description *string  `json:"descripcion"`
	Amount      *float64 `json:"monto"`
	Date        *Fecha   `json:"fecha"`
	EventID     *string  `json:"evento_id"`
}

// Apply merges the provided fields into an existing record.
func (u EventExpenseUpdate) Apply(e *EventExpense) {
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
	if u.EventID != nil {
		e.EventID = strings.TrimSpace(*u.EventID)
	}
}
