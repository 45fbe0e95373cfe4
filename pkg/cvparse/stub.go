package cvparse

import (
	"context"
	"time"

	"github.com/luminahr/portal/pkg/ptrx"
)

// StubParser simula el parseo con una demora fija y una respuesta
// enlatada. Es el modo por defecto en entornos sin clave de OpenAI.
type StubParser struct {
	delay time.Duration
}

// NewStubParser crea el parser simulado
func NewStubParser(delay time.Duration) *StubParser {
	return &StubParser{delay: delay}
}

// Parse espera la demora configurada y retorna campos fijos. Respeta la
// cancelación del contexto durante la espera.
func (p *StubParser) Parse(ctx context.Context, content []byte, mimeType string) (*Fields, error) {
	if len(content) == 0 {
		return nil, ErrCVEmpty()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return &Fields{
		FullName:    ptrx.Ptr("John Doe"),
		Email:       ptrx.Ptr("john.doe@example.com"),
		PhoneNumber: ptrx.Ptr("12345678"),
		Skills:      []string{"Communication", "Teamwork"},
	}, nil
}
