package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInsufficientPoints = errors.New("puntos insuficientes")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)
