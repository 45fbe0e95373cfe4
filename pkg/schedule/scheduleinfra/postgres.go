package scheduleinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/schedule"
)

// PostgresInterviewRepository implementación de PostgreSQL para
// InterviewRepository. La tabla lleva UNIQUE(day, time_slot): el slot
// ocupado se detecta también bajo concurrencia.
type PostgresInterviewRepository struct {
	db *sqlx.DB
}

// NewPostgresInterviewRepository crea el repositorio de entrevistas
func NewPostgresInterviewRepository(db *sqlx.DB) schedule.InterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

// Insert persiste la entrevista agendada
func (r *PostgresInterviewRepository) Insert(ctx context.Context, iv schedule.InterviewRecord) error {
	query := `
		INSERT INTO interviews (
			id, candidate_name, position_title, interview_type,
			location, business_units, day, time_slot, notes, created_at
		) VALUES (
			:id, :candidate_name, :position_title, :interview_type,
			:location, :business_units, :day, :time_slot, :notes, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, iv)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return schedule.ErrSlotTaken().
				WithDetail("day", iv.Day.Format("2006-01-02")).
				WithDetail("time_slot", iv.TimeSlot)
		}
		return errx.Wrap(err, "failed to insert interview", errx.TypeInternal).
			WithDetail("interview_id", iv.ID.String())
	}
	return nil
}

// FindByID busca una entrevista por ID
func (r *PostgresInterviewRepository) FindByID(ctx context.Context, id kernel.InterviewID) (*schedule.InterviewRecord, error) {
	query := `
		SELECT
			id, candidate_name, position_title, interview_type,
			location, business_units, day, time_slot, notes, created_at
		FROM interviews
		WHERE id = $1`

	var iv schedule.InterviewRecord
	err := r.db.GetContext(ctx, &iv, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, schedule.ErrInterviewNotFound().WithDetail("interview_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find interview by id", errx.TypeInternal).
			WithDetail("interview_id", id.String())
	}
	return &iv, nil
}

// FindBySlot retorna la entrevista del slot, o nil si está libre
func (r *PostgresInterviewRepository) FindBySlot(ctx context.Context, day time.Time, slot string) (*schedule.InterviewRecord, error) {
	query := `
		SELECT
			id, candidate_name, position_title, interview_type,
			location, business_units, day, time_slot, notes, created_at
		FROM interviews
		WHERE day = $1 AND time_slot = $2`

	var iv schedule.InterviewRecord
	err := r.db.GetContext(ctx, &iv, query, day.Format("2006-01-02"), slot)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to find interview by slot", errx.TypeInternal).
			WithDetail("day", day.Format("2006-01-02")).
			WithDetail("time_slot", slot)
	}
	return &iv, nil
}

// ListWeek lista las entrevistas de la semana que empieza en monday
func (r *PostgresInterviewRepository) ListWeek(ctx context.Context, monday time.Time) ([]schedule.InterviewRecord, error) {
	query := `
		SELECT
			id, candidate_name, position_title, interview_type,
			location, business_units, day, time_slot, notes, created_at
		FROM interviews
		WHERE day >= $1 AND day < $2
		ORDER BY day, time_slot`

	var interviews []schedule.InterviewRecord
	err := r.db.SelectContext(ctx, &interviews, query,
		monday.Format("2006-01-02"),
		monday.AddDate(0, 0, 7).Format("2006-01-02"))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list interviews for week", errx.TypeInternal).
			WithDetail("monday", monday.Format("2006-01-02"))
	}
	return interviews, nil
}

// PostgresDirectoryRepository catálogos de candidatos, posiciones y
// unidades de negocio para autocompletado
type PostgresDirectoryRepository struct {
	db *sqlx.DB
}

// NewPostgresDirectoryRepository crea el repositorio de directorio
func NewPostgresDirectoryRepository(db *sqlx.DB) schedule.DirectoryRepository {
	return &PostgresDirectoryRepository{db: db}
}

// SearchCandidates busca candidatos por substring del nombre
func (r *PostgresDirectoryRepository) SearchCandidates(ctx context.Context, query string, limit int) ([]string, error) {
	sqlQuery := `
		SELECT full_name
		FROM applications
		WHERE full_name ILIKE '%' || $1 || '%'
		GROUP BY full_name
		ORDER BY full_name
		LIMIT $2`

	var names []string
	if err := r.db.SelectContext(ctx, &names, sqlQuery, query, limit); err != nil {
		return nil, errx.Wrap(err, "failed to search candidates", errx.TypeInternal)
	}
	return names, nil
}

// SearchPositions busca posiciones abiertas por substring del título
func (r *PostgresDirectoryRepository) SearchPositions(ctx context.Context, query string, limit int) ([]string, error) {
	sqlQuery := `
		SELECT title
		FROM positions
		WHERE is_open AND title ILIKE '%' || $1 || '%'
		ORDER BY title
		LIMIT $2`

	var titles []string
	if err := r.db.SelectContext(ctx, &titles, sqlQuery, query, limit); err != nil {
		return nil, errx.Wrap(err, "failed to search positions", errx.TypeInternal)
	}
	return titles, nil
}

// ListBusinessUnits retorna las unidades de negocio activas
func (r *PostgresDirectoryRepository) ListBusinessUnits(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM business_units ORDER BY name`

	var units []string
	if err := r.db.SelectContext(ctx, &units, query); err != nil {
		return nil, errx.Wrap(err, "failed to list business units", errx.TypeInternal)
	}
	return units, nil
}
