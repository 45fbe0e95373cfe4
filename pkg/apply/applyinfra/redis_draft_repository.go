package applyinfra

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/logx"
)

// Claves por borrador. Los nombres replican el contrato de storage del
// cliente web: proyección, metadatos del CV, blob base64 del video,
// último ID de postulación y flag de cámara activa.
const (
	keyFormData     = "applicationFormData:%s"
	keyCVMeta       = "uploadedCvFile:%s"
	keyVideoBlob    = "recordedVideoBlob:%s"
	keyLastAppID    = "lastApplicationId:%s"
	keyCameraActive = "cameraStreamActive:%s"
)

// RedisDraftRepository implementación en Redis del DraftRepository
type RedisDraftRepository struct {
	client *redis.Client
}

// NewRedisDraftRepository crea el repositorio de borradores
func NewRedisDraftRepository(client *redis.Client) *RedisDraftRepository {
	return &RedisDraftRepository{client: client}
}

// Save proyecta y escribe el borrador. Mientras el borrador esté en blanco
// (sin nombre ni email) no se escribe nada: un primer render no deja rastro.
func (r *RedisDraftRepository) Save(ctx context.Context, d apply.Draft) error {
	if !apply.ShouldPersist(d) {
		return nil
	}

	projection := apply.Project(d)
	jsonData, err := json.Marshal(projection)
	if err != nil {
		return errx.Wrap(err, "failed to marshal draft projection", errx.TypeInternal)
	}

	if err := r.client.Set(ctx, draftKey(keyFormData, d.ID), jsonData, 0).Err(); err != nil {
		return errx.Wrap(err, "failed to store draft projection", errx.TypeInternal).
			WithDetail("draft_id", d.ID.String())
	}

	if err := r.saveCVMeta(ctx, d); err != nil {
		return err
	}

	return r.saveVideoBlob(ctx, d)
}

func (r *RedisDraftRepository) saveCVMeta(ctx context.Context, d apply.Draft) error {
	key := draftKey(keyCVMeta, d.ID)

	if !d.CV.IsSet() {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return errx.Wrap(err, "failed to clear cv metadata", errx.TypeInternal)
		}
		return nil
	}

	meta := apply.CVMeta{Name: d.CV.Name, Type: d.CV.MimeType, Size: d.CV.Size}
	jsonData, err := json.Marshal(meta)
	if err != nil {
		return errx.Wrap(err, "failed to marshal cv metadata", errx.TypeInternal)
	}
	if err := r.client.Set(ctx, key, jsonData, 0).Err(); err != nil {
		return errx.Wrap(err, "failed to store cv metadata", errx.TypeInternal)
	}
	return nil
}

// saveVideoBlob persiste los bytes del video en base64 bajo su propia
// clave. Es el único contenido binario que sobrevive una restauración.
func (r *RedisDraftRepository) saveVideoBlob(ctx context.Context, d apply.Draft) error {
	key := draftKey(keyVideoBlob, d.ID)

	if d.Video.Kind != apply.FilePresent || len(d.Video.Bytes) == 0 {
		// un video recordado pero sin bytes no pisa un blob ya guardado
		if !d.Video.IsSet() {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				return errx.Wrap(err, "failed to clear video blob", errx.TypeInternal)
			}
		}
		return nil
	}

	encoded := base64.StdEncoding.EncodeToString(d.Video.Bytes)
	if err := r.client.Set(ctx, key, encoded, 0).Err(); err != nil {
		return errx.Wrap(err, "failed to store video blob", errx.TypeInternal).
			WithDetail("draft_id", d.ID.String())
	}
	return nil
}

// Restore lee la proyección y reconstruye el borrador. Un blob de video
// corrupto degrada a "sin video" en lugar de fallar la restauración.
func (r *RedisDraftRepository) Restore(ctx context.Context, id kernel.DraftID) (*apply.Draft, error) {
	jsonData, err := r.client.Get(ctx, draftKey(keyFormData, id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apply.ErrDraftNotFound().WithDetail("draft_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to read draft projection", errx.TypeInternal).
			WithDetail("draft_id", id.String())
	}

	var projection apply.Projection
	if err := json.Unmarshal([]byte(jsonData), &projection); err != nil {
		return nil, errx.Wrap(err, "failed to unmarshal draft projection", errx.TypeInternal).
			WithDetail("draft_id", id.String())
	}

	cvMeta := r.readCVMeta(ctx, id)
	videoBytes := r.readVideoBlob(ctx, id)

	draft := apply.RestoreDraft(id, projection, cvMeta, videoBytes)
	return &draft, nil
}

func (r *RedisDraftRepository) readCVMeta(ctx context.Context, id kernel.DraftID) *apply.CVMeta {
	jsonData, err := r.client.Get(ctx, draftKey(keyCVMeta, id)).Result()
	if err != nil {
		return nil
	}
	var meta apply.CVMeta
	if err := json.Unmarshal([]byte(jsonData), &meta); err != nil {
		logx.WithFields(logx.Fields{"draft_id": id.String()}).
			Warnf("discarding corrupt cv metadata: %v", err)
		return nil
	}
	return &meta
}

func (r *RedisDraftRepository) readVideoBlob(ctx context.Context, id kernel.DraftID) []byte {
	encoded, err := r.client.Get(ctx, draftKey(keyVideoBlob, id)).Result()
	if err != nil {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		logx.WithFields(logx.Fields{"draft_id": id.String()}).
			Warnf("discarding corrupt video blob: %v", err)
		return nil
	}
	return decoded
}

// Clear elimina todas las claves del borrador
func (r *RedisDraftRepository) Clear(ctx context.Context, id kernel.DraftID) error {
	keys := []string{
		draftKey(keyFormData, id),
		draftKey(keyCVMeta, id),
		draftKey(keyVideoBlob, id),
		draftKey(keyCameraActive, id),
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errx.Wrap(err, "failed to clear draft keys", errx.TypeInternal).
			WithDetail("draft_id", id.String())
	}
	return nil
}

// SetLastApplicationID cachea el ID retornado por el envío exitoso
func (r *RedisDraftRepository) SetLastApplicationID(ctx context.Context, id kernel.DraftID, applicationID string) error {
	if err := r.client.Set(ctx, draftKey(keyLastAppID, id), applicationID, 0).Err(); err != nil {
		return errx.Wrap(err, "failed to cache application id", errx.TypeInternal).
			WithDetail("draft_id", id.String())
	}
	return nil
}

// GetLastApplicationID recupera el ID cacheado, o "" si no hay
func (r *RedisDraftRepository) GetLastApplicationID(ctx context.Context, id kernel.DraftID) (string, error) {
	val, err := r.client.Get(ctx, draftKey(keyLastAppID, id)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", errx.Wrap(err, "failed to read cached application id", errx.TypeInternal)
	}
	return val, nil
}

// SetCameraStreamActive marca o limpia el flag de sesión de captura
func (r *RedisDraftRepository) SetCameraStreamActive(ctx context.Context, id kernel.DraftID, active bool) error {
	key := draftKey(keyCameraActive, id)
	var err error
	if active {
		err = r.client.Set(ctx, key, "true", 0).Err()
	} else {
		err = r.client.Del(ctx, key).Err()
	}
	if err != nil {
		return errx.Wrap(err, "failed to update camera flag", errx.TypeInternal)
	}
	return nil
}

// StaleDraftIDs recorre las proyecciones y retorna los borradores cuyo
// último guardado es anterior al corte. Lo consume el barrido de retención.
func (r *RedisDraftRepository) StaleDraftIDs(ctx context.Context, olderThan time.Time) ([]kernel.DraftID, error) {
	var stale []kernel.DraftID

	iter := r.client.Scan(ctx, 0, fmt.Sprintf(keyFormData, "*"), 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		jsonData, err := r.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		var projection apply.Projection
		if err := json.Unmarshal([]byte(jsonData), &projection); err != nil {
			continue
		}
		if projection.SavedAt.Before(olderThan) {
			var id string
			if _, err := fmt.Sscanf(key, keyFormData, &id); err == nil {
				stale = append(stale, kernel.DraftID(id))
			}
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errx.Wrap(err, "failed to scan draft keys", errx.TypeInternal)
	}

	return stale, nil
}

func draftKey(pattern string, id kernel.DraftID) string {
	return fmt.Sprintf(pattern, id.String())
}
