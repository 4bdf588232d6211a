package database

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors returned by store operations. Handlers match these with
// errors.Is / errors.As and map them to HTTP statuses.
var (
	ErrNotFound    = errors.New("registro no encontrado")
	ErrInvalidID   = errors.New("identificador inválido")
	ErrUnavailable = errors.New("base de datos no disponible")
)

// ValidationError lists every violated field constraint of a write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "datos inválidos"
	}
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return "datos inválidos: " + strings.Join(msgs, "; ")
}
