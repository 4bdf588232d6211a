package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire-format field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages maps "<field>|<rule>" to the Spanish message the API returns.
var fieldMessages = map[string]string{
	"categoria|required":            "La categoría es obligatoria",
	"categoria|oneof":               "La categoría no es válida",
	"descripcion|required":          "La descripción es obligatoria",
	"descripcion|max":               "La descripción no puede exceder 500 caracteres",
	"monto|required":                "El monto es obligatorio",
	"monto|gte":                     "El monto debe ser positivo",
	"evento_id|required":            "El ID del evento es obligatorio",
	"nombre|required_if":            "El nombre es obligatorio para nómina",
	"nombre|excluded_unless":        "El nombre solo aplica a la categoría nómina",
	"cargo|required_if":             "El cargo es obligatorio para nómina",
	"cargo|excluded_unless":         "El cargo solo aplica a la categoría nómina",
	"salario|required_if":           "El salario es obligatorio para nómina",
	"salario|excluded_unless":       "El salario solo aplica a la categoría nómina",
	"salario|gte":                   "El salario debe ser positivo",
	"fecha_ingreso|required_if":     "La fecha de ingreso es obligatoria para nómina",
	"fecha_ingreso|excluded_unless": "La fecha de ingreso solo aplica a la categoría nómina",
}

// fieldErrors validates an input struct and returns every violation as a
// field -> message map, nil when the input is valid.
func fieldErrors(in any) map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = spanishMessage(fe)
	}
	return out
}

func spanishMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"|"+fe.Tag()]; ok {
		return msg
	}
	return "El campo " + fe.Field() + " no es válido"
}
