package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrImageLimitExceeded  = errors.New("límite de imágenes por producto excedido")
	ErrInsufficientBalance = errors.New("saldo de comisiones insuficiente")
	// ErrPartialFailure marca un sub-paso best-effort que falló sin abortar la operación padre.
	ErrPartialFailure = errors.New("falla parcial")
)
