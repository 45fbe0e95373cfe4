package applyinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/ptrx"
)

// PostgresApplicationRepository implementación de PostgreSQL del
// SubmissionGateway. Persiste la postulación final y referencia los
// archivos ya subidos a storage por su clave.
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository crea el repositorio de postulaciones
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

type applicationRow struct {
	ID          string    `db:"id"`
	OfferID     *string   `db:"offer_id"`
	FullName    string    `db:"full_name"`
	Email       string    `db:"email"`
	Payload     []byte    `db:"payload"`
	CVKey       *string   `db:"cv_key"`
	VideoKey    *string   `db:"video_key"`
	SubmittedAt time.Time `db:"submitted_at"`
}

// SubmitApplication inserta la postulación y retorna la respuesta del
// backend. Una postulación duplicada sobre la misma oferta se mapea al
// error de conflicto en lugar de propagar el error crudo del driver.
func (r *PostgresApplicationRepository) SubmitApplication(ctx context.Context, payload apply.ApplicationPayload, cv, video apply.FileRef) (*apply.SubmissionResponse, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, errx.Wrap(err, "failed to marshal application payload", errx.TypeInternal)
	}

	row := applicationRow{
		ID:          kernel.NewApplicationID().String(),
		FullName:    payload.FullName,
		Email:       payload.Email,
		Payload:     jsonPayload,
		SubmittedAt: time.Now(),
	}
	if payload.OffreID != "" {
		row.OfferID = &payload.OffreID
	}
	if cv.StorageKey != "" {
		row.CVKey = &cv.StorageKey
	}
	if video.StorageKey != "" {
		row.VideoKey = &video.StorageKey
	}

	query := `
		INSERT INTO applications (
			id, offer_id, full_name, email, payload,
			cv_key, video_key, submitted_at
		) VALUES (
			:id, :offer_id, :full_name, :email, :payload,
			:cv_key, :video_key, :submitted_at
		)`

	_, err = r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, errx.New("application already submitted for this offer", errx.TypeConflict).
				WithDetail("email", payload.Email).
				WithDetail("offer_id", payload.OffreID)
		}
		return nil, errx.Wrap(err, "failed to insert application", errx.TypeInternal).
			WithDetail("email", payload.Email)
	}

	return &apply.SubmissionResponse{
		Success:       ptrx.Ptr(true),
		ApplicationID: row.ID,
		Message:       "application received",
	}, nil
}
