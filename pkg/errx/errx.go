// Package errx define el modelo de errores tipados de la aplicación.
package errx

import (
	"fmt"
	"net/http"
)

// ErrorType clasifica los errores por su naturaleza
type ErrorType string

const (
	TypeValidation     ErrorType = "VALIDATION"
	TypeNotFound       ErrorType = "NOT_FOUND"
	TypeConflict       ErrorType = "CONFLICT"
	TypeBusiness       ErrorType = "BUSINESS"
	TypeAuthentication ErrorType = "AUTHENTICATION"
	TypeAuthorization  ErrorType = "AUTHORIZATION"
	TypeExternal       ErrorType = "EXTERNAL"
	TypeInternal       ErrorType = "INTERNAL"
)

// defaultStatus retorna el status HTTP por defecto para un tipo de error
func defaultStatus(t ErrorType) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error es el error estándar de la aplicación
type Error struct {
	Code       string         `json:"code"`
	Type       ErrorType      `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

// Error implementa la interfaz error
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expone el error subyacente
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail agrega un detalle al error (chainable)
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithMessage reemplaza el mensaje del error (chainable)
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// New crea un error sin registro previo
func New(message string, t ErrorType) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: defaultStatus(t),
	}
}

// Wrap envuelve un error existente
func Wrap(err error, message string, t ErrorType) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: defaultStatus(t),
		Err:        err,
	}
}

// IsType verifica si un error es un *Error del tipo dado
func IsType(err error, t ErrorType) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}

// ============================================================================
// Registry - catálogo de errores por dominio
// ============================================================================

// Code identifica un error registrado
type Code string

type definition struct {
	errType    ErrorType
	httpStatus int
	message    string
}

// Registry agrupa los errores de un dominio bajo un prefijo común
type Registry struct {
	prefix      string
	definitions map[Code]definition
}

// NewRegistry crea un registro de errores con el prefijo dado
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[Code]definition),
	}
}

// Register registra un error del dominio y retorna su código
func (r *Registry) Register(code string, t ErrorType, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.definitions[full] = definition{
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New instancia un error previamente registrado
func (r *Registry) New(code Code) *Error {
	def, ok := r.definitions[code]
	if !ok {
		return &Error{
			Code:       string(code),
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       string(code),
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithErr instancia un error registrado envolviendo la causa
func (r *Registry) NewWithErr(code Code, err error) *Error {
	e := r.New(code)
	e.Err = err
	return e
}
