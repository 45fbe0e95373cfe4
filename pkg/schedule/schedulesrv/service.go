package schedulesrv

import (
	"context"
	"time"

	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/logx"
	"github.com/luminahr/portal/pkg/schedule"
)

const suggestionLimit = 10

// ScheduleService operaciones de negocio del agendamiento de entrevistas
type ScheduleService struct {
	interviews schedule.InterviewRepository
	directory  schedule.DirectoryRepository
}

// NewScheduleService crea una nueva instancia del servicio de agenda
func NewScheduleService(interviews schedule.InterviewRepository, directory schedule.DirectoryRepository) *ScheduleService {
	return &ScheduleService{
		interviews: interviews,
		directory:  directory,
	}
}

// WeekView la grilla semanal lista para render
type WeekView struct {
	Monday     time.Time                  `json:"monday"`
	Days       [7]time.Time               `json:"days"`
	TimeSlots  []string                   `json:"time_slots"`
	Interviews []schedule.InterviewRecord `json:"interviews"`
}

// GetWeek arma la vista de la semana que contiene date
func (s *ScheduleService) GetWeek(ctx context.Context, date time.Time) (*WeekView, error) {
	monday := schedule.WeekOf(date)
	interviews, err := s.interviews.ListWeek(ctx, monday)
	if err != nil {
		return nil, err
	}

	return &WeekView{
		Monday:     monday,
		Days:       schedule.WeekDays(date),
		TimeSlots:  schedule.TimeSlots,
		Interviews: interviews,
	}, nil
}

// GetSlot retorna la entrevista del slot, o nil si está libre
func (s *ScheduleService) GetSlot(ctx context.Context, day time.Time, slot string) (*schedule.InterviewRecord, error) {
	if !schedule.IsValidSlot(slot) {
		return nil, schedule.ErrInvalidSlot().WithDetail("slot", slot)
	}
	return s.interviews.FindBySlot(ctx, day, slot)
}

// ScheduleInterview materializa el borrador en el slot elegido. Se
// verifica el slot antes de insertar; la restricción única de la base
// cubre la carrera entre ambas operaciones.
func (s *ScheduleService) ScheduleInterview(ctx context.Context, draft schedule.InterviewDraft, day time.Time, slot string) (*schedule.InterviewRecord, error) {
	record, err := draft.Build(day, slot)
	if err != nil {
		return nil, err
	}

	existing, err := s.interviews.FindBySlot(ctx, record.Day, record.TimeSlot)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, schedule.ErrSlotTaken().
			WithDetail("day", record.Day.Format("2006-01-02")).
			WithDetail("time_slot", record.TimeSlot)
	}

	if err := s.interviews.Insert(ctx, record); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{
		"interview_id": record.ID.String(),
		"candidate":    record.CandidateName,
		"day":          record.Day.Format("2006-01-02"),
		"time_slot":    record.TimeSlot,
	}).Info("interview scheduled")

	return &record, nil
}

// GetInterview busca una entrevista por ID
func (s *ScheduleService) GetInterview(ctx context.Context, id kernel.InterviewID) (*schedule.InterviewRecord, error) {
	return s.interviews.FindByID(ctx, id)
}

// SearchCandidates sugiere candidatos del directorio para el chip
func (s *ScheduleService) SearchCandidates(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, nil
	}
	return s.directory.SearchCandidates(ctx, query, suggestionLimit)
}

// SearchPositions sugiere posiciones abiertas para el chip
func (s *ScheduleService) SearchPositions(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, nil
	}
	return s.directory.SearchPositions(ctx, query, suggestionLimit)
}

// ListBusinessUnits catálogos de unidades de negocio
func (s *ScheduleService) ListBusinessUnits(ctx context.Context) ([]string, error) {
	return s.directory.ListBusinessUnits(ctx)
}

// Questions retorna el banco de preguntas por defecto
func (s *ScheduleService) Questions() []string {
	return schedule.DefaultQuestions()
}

// ShuffleQuestions permuta aleatoriamente la lista dada
func (s *ScheduleService) ShuffleQuestions(questions []string) []string {
	return schedule.Shuffle(questions)
}
