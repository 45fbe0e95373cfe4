package cvparse

import (
	"context"

	"github.com/luminahr/portal/pkg/errx"
)

// Fields son los campos de formulario que un CV parseado puede prellenar.
// Los punteros en nil se dejan tal como el candidato los tenga.
type Fields struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Address     *string `json:"address,omitempty"`

	Skills []string `json:"skills,omitempty"`
}

// Parser extrae campos estructurados del contenido de un CV
type Parser interface {
	Parse(ctx context.Context, content []byte, mimeType string) (*Fields, error)
}

// Errores de cvparse
var registry = errx.NewRegistry("CVPARSE")

var (
	ErrParseFailed = registry.Register("PARSE_FAILED", errx.TypeExternal, 502, "Failed to parse CV content")
	ErrEmptyCV     = registry.Register("EMPTY_CV", errx.TypeValidation, 400, "CV content is empty")
)

func ErrCVParseFailed() *errx.Error { return registry.New(ErrParseFailed) }
func ErrCVEmpty() *errx.Error       { return registry.New(ErrEmptyCV) }
