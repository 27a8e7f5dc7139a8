package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios. Duplicates answer 406 to match the
// contract the legacy clients already depend on.
var (
	ErrInvalidCredentials = New("CREDENCIALES_INVALIDAS", http.StatusUnauthorized, "correo o contraseña incorrectos")
	ErrUnauthorized       = New("NO_AUTORIZADO", http.StatusUnauthorized, "no autorizado")
	ErrForbidden          = New("PROHIBIDO", http.StatusForbidden, "rol sin permiso para esta operación")
	ErrNotFound           = New("NO_ENCONTRADO", http.StatusNotFound, "recurso no encontrado")
	ErrValidation         = New("VALIDACION", http.StatusBadRequest, "datos inválidos")
	ErrScheduleConflict   = New("CONFLICTO_HORARIO", http.StatusConflict, "el horario se traslapa con otro grupo")
	ErrCapacityExceeded   = New("CAPACIDAD_EXCEDIDA", http.StatusConflict, "capacidad máxima excedida")
	ErrDuplicate          = New("DUPLICADO", http.StatusNotAcceptable, "el registro ya existe")
	ErrAlreadyEnrolled    = New("YA_INSCRITO", http.StatusNotAcceptable, "el usuario ya está inscrito")
	ErrAlreadyWaitlisted  = New("YA_EN_ESPERA", http.StatusNotAcceptable, "el usuario ya está en lista de espera")
	ErrInternal           = New("ERROR_INTERNO", http.StatusInternalServerError, "error inesperado")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
