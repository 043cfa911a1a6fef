package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Cada uno es una categoría; el mensaje concreto para el cliente viaja en *Error.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("duplicate email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotApproved = errors.New("account not approved")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")

	// Fallos del almacenamiento externo de adjuntos. Nunca llegan al cliente
	// salvo ErrUpload durante registro/actualización.
	ErrUpload   = errors.New("upload error")
	ErrDeletion = errors.New("deletion error")
)

// Error error de dominio con categoría, mensaje legible y causa opcional.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

// Unwrap permite errors.Is contra la categoría y contra la causa.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// New construye un error de dominio de la categoría indicada.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf igual que New con formato.
func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap envuelve una causa bajo una categoría de dominio.
func Wrap(kind error, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf devuelve la categoría de err, o ErrInternal si no es un error de dominio conocido.
func KindOf(err error) error {
	for _, k := range []error{
		ErrValidation, ErrDuplicateEmail, ErrInvalidCredentials, ErrAccountNotApproved,
		ErrForbidden, ErrNotFound, ErrUpload, ErrDeletion, ErrInternal,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}
