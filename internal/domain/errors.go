package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrCyclicRecipe    = errors.New("el catálogo contiene una receta cíclica")
	ErrLedgerInvariant = errors.New("trabajo sin demanda previa en el libro del plan")
)
