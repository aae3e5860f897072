package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDeactivated = errors.New("cuenta desactivada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOrderCancelled     = errors.New("el pedido está cancelado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)
