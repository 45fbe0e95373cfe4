package apply

import (
	"context"
	"time"

	"github.com/luminahr/portal/pkg/kernel"
)

// DraftRepository define el contrato de persistencia de borradores
type DraftRepository interface {
	// Save persiste el borrador; se omite silenciosamente mientras el
	// borrador esté completamente en blanco (ver ShouldPersist)
	Save(ctx context.Context, d Draft) error

	// Restore reconstruye el borrador; corre una sola vez por sesión
	Restore(ctx context.Context, id kernel.DraftID) (*Draft, error)

	// Clear elimina todas las claves persistidas del borrador; solo se
	// invoca tras un envío confirmado
	Clear(ctx context.Context, id kernel.DraftID) error

	// SetLastApplicationID cachea el identificador retornado por el envío
	SetLastApplicationID(ctx context.Context, id kernel.DraftID, applicationID string) error

	// GetLastApplicationID recupera el identificador cacheado, o "" si no hay
	GetLastApplicationID(ctx context.Context, id kernel.DraftID) (string, error)

	// SetCameraStreamActive marca o limpia el flag de sesión de captura
	SetCameraStreamActive(ctx context.Context, id kernel.DraftID, active bool) error

	// StaleDraftIDs lista borradores sin actividad desde antes del corte
	StaleDraftIDs(ctx context.Context, olderThan time.Time) ([]kernel.DraftID, error)
}

// SubmissionGateway es el colaborador externo que recibe la postulación.
// Solo importa su contrato request/response; la implementación por defecto
// persiste en la base propia del portal.
type SubmissionGateway interface {
	SubmitApplication(ctx context.Context, payload ApplicationPayload, cv, video FileRef) (*SubmissionResponse, error)
}

// CameraSignaler difunde la señal de liberar cámara/micrófono a cualquier
// sesión de captura que siga activa
type CameraSignaler interface {
	StopCameraStreams(ctx context.Context, id kernel.DraftID) error
}
