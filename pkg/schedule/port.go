package schedule

import (
	"context"
	"time"

	"github.com/luminahr/portal/pkg/kernel"
)

// InterviewRepository define la persistencia de entrevistas agendadas.
// La unicidad por slot se verifica en el servicio y se refuerza con una
// restricción única en la base.
type InterviewRepository interface {
	// Insert persiste la entrevista; retorna ErrSlotTaken si el slot ya
	// está ocupado
	Insert(ctx context.Context, iv InterviewRecord) error

	// FindByID busca una entrevista por identificador
	FindByID(ctx context.Context, id kernel.InterviewID) (*InterviewRecord, error)

	// FindBySlot retorna la entrevista del slot, o nil si está libre
	FindBySlot(ctx context.Context, day time.Time, slot string) (*InterviewRecord, error)

	// ListWeek lista las entrevistas entre el lunes dado (inclusive) y el
	// lunes siguiente (exclusive)
	ListWeek(ctx context.Context, monday time.Time) ([]InterviewRecord, error)
}

// DirectoryRepository expone los catálogos contra los que autocompletable
// el formulario de entrevista
type DirectoryRepository interface {
	// SearchCandidates busca nombres de candidatos por substring
	SearchCandidates(ctx context.Context, query string, limit int) ([]string, error)

	// SearchPositions busca títulos de posiciones abiertas por substring
	SearchPositions(ctx context.Context, query string, limit int) ([]string, error)

	// ListBusinessUnits retorna las unidades de negocio disponibles
	ListBusinessUnits(ctx context.Context) ([]string, error)
}
