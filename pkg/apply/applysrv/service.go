package applysrv

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/config"
	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/fsx"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/logx"
	"github.com/luminahr/portal/pkg/ptrx"
)

// DraftService orquesta el ciclo de vida del borrador: cada operación
// restaura el estado, aplica la mutación pura y vuelve a guardar.
type DraftService struct {
	drafts  apply.DraftRepository
	gateway apply.SubmissionGateway
	camera  apply.CameraSignaler
	files   fsx.FileSystem
	config  *config.DraftConfig
}

// NewDraftService crea una nueva instancia del servicio de borradores
func NewDraftService(
	drafts apply.DraftRepository,
	gateway apply.SubmissionGateway,
	camera apply.CameraSignaler,
	files fsx.FileSystem,
	cfg *config.DraftConfig,
) *DraftService {
	return &DraftService{
		drafts:  drafts,
		gateway: gateway,
		camera:  camera,
		files:   files,
		config:  cfg,
	}
}

// ============================================================================
// Ciclo de vida
// ============================================================================

// OpenDraft restaura el borrador si existe, o arranca uno nuevo. Los
// parámetros de deep link se consumen una sola vez: si el borrador
// restaurado ya los aplicó, esta llamada los ignora.
func (s *DraftService) OpenDraft(ctx context.Context, id kernel.DraftID, link apply.DeepLink) (apply.Draft, error) {
	draft, err := s.drafts.Restore(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			fresh := apply.NewDraft(id)
			draft = &fresh
		} else {
			return apply.Draft{}, err
		}
	}

	next := draft.ConsumeDeepLink(link)
	if err := s.drafts.Save(ctx, next); err != nil {
		return apply.Draft{}, err
	}
	return next, nil
}

// GetDraft restaura el borrador sin mutarlo
func (s *DraftService) GetDraft(ctx context.Context, id kernel.DraftID) (apply.Draft, error) {
	draft, err := s.drafts.Restore(ctx, id)
	if err != nil {
		return apply.Draft{}, err
	}
	return *draft, nil
}

// mutate es el patrón restaurar → aplicar → guardar compartido por todas
// las operaciones de edición.
func (s *DraftService) mutate(ctx context.Context, id kernel.DraftID, fn func(apply.Draft) (apply.Draft, error)) (apply.Draft, error) {
	draft, err := s.drafts.Restore(ctx, id)
	if err != nil {
		return apply.Draft{}, err
	}

	next, err := fn(*draft)
	if err != nil {
		return apply.Draft{}, err
	}

	if err := s.drafts.Save(ctx, next); err != nil {
		return apply.Draft{}, err
	}
	return next, nil
}

// ============================================================================
// Edición de campos y secciones
// ============================================================================

// SetPersonalField actualiza un campo de información personal
func (s *DraftService) SetPersonalField(ctx context.Context, id kernel.DraftID, field, value string) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.SetPersonalField(field, value)
	})
}

// SetPracticalExperience actualiza el texto de experiencia práctica
func (s *DraftService) SetPracticalExperience(ctx context.Context, id kernel.DraftID, value string) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.SetPracticalExperience(value), nil
	})
}

// AppendEntry agrega una entrada en blanco a la sección indicada
func (s *DraftService) AppendEntry(ctx context.Context, id kernel.DraftID, section apply.Section) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.AppendEntry(section)
	})
}

// UpdateEntryField actualiza un campo de una entrada existente
func (s *DraftService) UpdateEntryField(ctx context.Context, id kernel.DraftID, section apply.Section, index int, field, value string) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.UpdateEntryField(section, index, field, value)
	})
}

// RemoveEntry elimina una entrada preservando el orden del resto
func (s *DraftService) RemoveEntry(ctx context.Context, id kernel.DraftID, section apply.Section, index int) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.RemoveEntry(section, index)
	})
}

// ============================================================================
// Navegación
// ============================================================================

// Next avanza al siguiente paso si el actual es válido
func (s *DraftService) Next(ctx context.Context, id kernel.DraftID) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.Next(), nil
	})
}

// Previous retrocede un paso sin validar
func (s *DraftService) Previous(ctx context.Context, id kernel.DraftID) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.Previous(), nil
	})
}

// GoToStep salta a un paso ya visitado, o al inmediato siguiente
func (s *DraftService) GoToStep(ctx context.Context, id kernel.DraftID, step int) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		return d.GoToStep(step)
	})
}

// StepValidity retorna la validez de cada paso del borrador
func (s *DraftService) StepValidity(ctx context.Context, id kernel.DraftID) ([10]bool, error) {
	draft, err := s.drafts.Restore(ctx, id)
	if err != nil {
		return [10]bool{}, err
	}
	return apply.StepValidity(*draft), nil
}

// ============================================================================
// Archivos
// ============================================================================

func cvObjectKey(id kernel.DraftID, name string) string {
	return fmt.Sprintf("drafts/%s/cv/%s", id.String(), name)
}

func videoObjectKey(id kernel.DraftID) string {
	return fmt.Sprintf("drafts/%s/video/intro", id.String())
}

// purgeStoredFiles borra los objetos de storage del borrador. Delete
// tolera claves inexistentes, así que la pasada es incondicional para
// el video (su clave es fija) y por nombre para el CV.
func purgeStoredFiles(ctx context.Context, files fsx.FileSystem, id kernel.DraftID, cvName string) {
	if cvName != "" {
		if err := files.Delete(ctx, cvObjectKey(id, cvName)); err != nil {
			logx.Warnf("failed to delete cv object for draft %s: %v", id.String(), err)
		}
	}
	if err := files.Delete(ctx, videoObjectKey(id)); err != nil {
		logx.Warnf("failed to delete video object for draft %s: %v", id.String(), err)
	}
}

// AttachCV sube el CV a storage y lo adjunta al borrador
func (s *DraftService) AttachCV(ctx context.Context, id kernel.DraftID, name, mimeType string, content []byte) (apply.Draft, error) {
	if int64(len(content)) > s.config.MaxUploadSize {
		return apply.Draft{}, apply.ErrFileTooLarge().
			WithDetail("file", name).
			WithDetail("size", len(content))
	}

	key := cvObjectKey(id, name)
	if err := s.files.Write(ctx, key, bytes.NewReader(content), mimeType); err != nil {
		return apply.Draft{}, err
	}

	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		// Un CV previo bajo otro nombre quedaría huérfano en storage
		if d.CV.Name != "" && d.CV.Name != name {
			if err := s.files.Delete(ctx, cvObjectKey(id, d.CV.Name)); err != nil {
				logx.Warnf("failed to delete replaced cv object for draft %s: %v", id.String(), err)
			}
		}
		ref := apply.FileRef{
			Kind:       apply.FilePresent,
			Name:       name,
			MimeType:   mimeType,
			Size:       int64(len(content)),
			StorageKey: key,
			Bytes:      content,
		}
		return d.AttachCV(ref), nil
	})
}

// DetachCV quita el CV del borrador y borra su objeto en storage
func (s *DraftService) DetachCV(ctx context.Context, id kernel.DraftID) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		if d.CV.Name != "" {
			if err := s.files.Delete(ctx, cvObjectKey(id, d.CV.Name)); err != nil {
				logx.Warnf("failed to delete cv object for draft %s: %v", id.String(), err)
			}
		}
		return d.AttachCV(apply.NoFile()), nil
	})
}

// AttachVideo guarda la grabación de video y la adjunta al borrador
func (s *DraftService) AttachVideo(ctx context.Context, id kernel.DraftID, mimeType string, content []byte) (apply.Draft, error) {
	if int64(len(content)) > s.config.MaxUploadSize {
		return apply.Draft{}, apply.ErrFileTooLarge().
			WithDetail("size", len(content))
	}
	if len(content) == 0 {
		return apply.Draft{}, apply.ErrNoFileAttached()
	}

	key := videoObjectKey(id)
	if err := s.files.Write(ctx, key, bytes.NewReader(content), mimeType); err != nil {
		return apply.Draft{}, err
	}

	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		ref := apply.FileRef{
			Kind:       apply.FilePresent,
			Name:       "video-intro",
			MimeType:   mimeType,
			Size:       int64(len(content)),
			StorageKey: key,
			Bytes:      content,
		}
		return d.AttachVideo(ref), nil
	})
}

// DetachVideo descarta la grabación de video y borra su objeto en storage
func (s *DraftService) DetachVideo(ctx context.Context, id kernel.DraftID) (apply.Draft, error) {
	return s.mutate(ctx, id, func(d apply.Draft) (apply.Draft, error) {
		if err := s.files.Delete(ctx, videoObjectKey(id)); err != nil {
			logx.Warnf("failed to delete video object for draft %s: %v", id.String(), err)
		}
		return d.AttachVideo(apply.NoFile()), nil
	})
}

// ============================================================================
// Envío
// ============================================================================

// SubmitResult resultado del envío visto por el candidato. El envío
// nunca propaga un error técnico: todo fallo se traduce a un mensaje.
type SubmitResult struct {
	Succeeded     bool   `json:"succeeded"`
	ApplicationID string `json:"application_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Submit arma el payload final y lo envía. En éxito apaga las cámaras,
// limpia el borrador persistido y cachea el ID retornado; el borrador
// devuelto queda en blanco.
func (s *DraftService) Submit(ctx context.Context, id kernel.DraftID) (SubmitResult, apply.Draft, error) {
	draft, err := s.drafts.Restore(ctx, id)
	if err != nil {
		return SubmitResult{}, apply.Draft{}, err
	}

	payload := apply.BuildPayload(*draft)
	resp, err := s.gateway.SubmitApplication(ctx, payload, draft.CV, draft.Video)
	if err != nil {
		logx.WithFields(logx.Fields{"draft_id": id.String()}).
			Warnf("application submission failed: %v", err)
		return SubmitResult{Succeeded: false, Message: failureMessage(err)}, *draft, nil
	}

	// Éxito laxo: basta el flag o un ID no vacío en cualquiera de sus formas
	appID := resp.ResolvedID()
	succeeded := ptrx.Deref(resp.Success, false) || appID != ""
	if !succeeded {
		// El mensaje del backend prevalece; el genérico queda para
		// respuestas vacías que no explican nada.
		msg := resp.Message
		if msg == "" {
			msg = messageSubmitFailed
		}
		return SubmitResult{Succeeded: false, Message: msg}, *draft, nil
	}

	if err := s.camera.StopCameraStreams(ctx, id); err != nil {
		logx.Warnf("failed to signal camera stop for draft %s: %v", id.String(), err)
	}
	if err := s.drafts.Clear(ctx, id); err != nil {
		logx.Warnf("failed to clear draft %s after submission: %v", id.String(), err)
	}
	if appID != "" {
		if err := s.drafts.SetLastApplicationID(ctx, id, appID); err != nil {
			logx.Warnf("failed to cache application id for draft %s: %v", id.String(), err)
		}
	}

	// El borrador en blanco no pasa el guard de persistencia, así que el
	// estado limpio solo vive en la respuesta.
	return SubmitResult{Succeeded: true, ApplicationID: appID}, apply.NewDraft(id), nil
}

const (
	messageNetwork      = "Unable to reach the server. Please check your connection and try again."
	messageTimeout      = "The request timed out. Please try again."
	messageFilesTooBig  = "Your files are too large. Please compress them and try again."
	messageSubmitFailed = "Something went wrong while submitting your application."
)

// failureMessage mapea el error técnico al mensaje mostrado al candidato
func failureMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "network") || strings.Contains(msg, "fetch"):
		return messageNetwork
	case strings.Contains(msg, "timeout"):
		return messageTimeout
	case strings.Contains(msg, "files are too large"):
		return messageFilesTooBig
	default:
		return err.Error()
	}
}

// DiscardDraft elimina todo rastro del borrador: claves en Redis y
// objetos en storage
func (s *DraftService) DiscardDraft(ctx context.Context, id kernel.DraftID) error {
	if draft, err := s.drafts.Restore(ctx, id); err == nil {
		purgeStoredFiles(ctx, s.files, id, draft.CV.Name)
	} else if !errx.IsType(err, errx.TypeNotFound) {
		return err
	}
	if err := s.drafts.Clear(ctx, id); err != nil {
		return err
	}
	logx.WithFields(logx.Fields{"draft_id": id.String()}).Info("draft discarded")
	return nil
}

// ============================================================================
// Cámara
// ============================================================================

// MarkCameraActive registra que el borrador tiene una sesión de captura
func (s *DraftService) MarkCameraActive(ctx context.Context, id kernel.DraftID, active bool) error {
	return s.drafts.SetCameraStreamActive(ctx, id, active)
}

// LastApplicationID retorna el ID de la última postulación enviada
func (s *DraftService) LastApplicationID(ctx context.Context, id kernel.DraftID) (string, error) {
	return s.drafts.GetLastApplicationID(ctx, id)
}

// StopCamera difunde la señal de apagado de cámara de un borrador
func (s *DraftService) StopCamera(ctx context.Context, id kernel.DraftID) error {
	return s.camera.StopCameraStreams(ctx, id)
}
