package schedule

import (
	"time"

	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/kernel"
)

// InterviewType tipo de entrevista agendable
type InterviewType string

const (
	TypeHR        InterviewType = "HR"
	TypeCommittee InterviewType = "COMMITTEE"
	TypeBU        InterviewType = "BU"
)

// ParseInterviewType valida un tipo de entrevista
func ParseInterviewType(s string) (InterviewType, error) {
	switch InterviewType(s) {
	case TypeHR, TypeCommittee, TypeBU:
		return InterviewType(s), nil
	default:
		return "", ErrInvalidInterviewType().WithDetail("type", s)
	}
}

// Location modalidad de la entrevista
type Location string

const (
	LocationVideoConference Location = "VIDEO_CONFERENCE"
	LocationInPerson        Location = "IN_PERSON"
	LocationPhoneCall       Location = "PHONE_CALL"
)

// ParseLocation valida una modalidad
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationVideoConference, LocationInPerson, LocationPhoneCall:
		return Location(s), nil
	default:
		return "", ErrInvalidLocation().WithDetail("location", s)
	}
}

// InterviewRecord una entrevista agendada en un slot concreto. Day es la
// fecha del slot (sin hora); TimeSlot es la etiqueta "HH:MM" de la grilla.
type InterviewRecord struct {
	ID            kernel.InterviewID `db:"id" json:"id"`
	CandidateName string             `db:"candidate_name" json:"candidate_name"`
	PositionTitle string             `db:"position_title" json:"position_title"`
	Type          InterviewType      `db:"interview_type" json:"type"`
	Location      Location           `db:"location" json:"location"`
	BusinessUnits string             `db:"business_units" json:"business_units,omitempty"`
	Day           time.Time          `db:"day" json:"day"`
	TimeSlot      string             `db:"time_slot" json:"time_slot"`
	Notes         string             `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

// Errores del dominio de agendamiento
var registry = errx.NewRegistry("SCHEDULE")

var (
	ErrCodeInterviewNotFound   = registry.Register("INTERVIEW_NOT_FOUND", errx.TypeNotFound, 404, "Interview not found")
	ErrCodeSlotTaken           = registry.Register("SLOT_TAKEN", errx.TypeConflict, 409, "This time slot is already booked")
	ErrCodeInvalidSlot         = registry.Register("INVALID_SLOT", errx.TypeValidation, 400, "Time slot is not part of the schedule grid")
	ErrCodeInvalidType         = registry.Register("INVALID_TYPE", errx.TypeValidation, 400, "Invalid interview type")
	ErrCodeInvalidLocation     = registry.Register("INVALID_LOCATION", errx.TypeValidation, 400, "Invalid interview location")
	ErrCodeDraftIncomplete     = registry.Register("DRAFT_INCOMPLETE", errx.TypeValidation, 400, "Interview details are incomplete")
	ErrCodeCandidateNotMatched = registry.Register("CANDIDATE_NOT_MATCHED", errx.TypeValidation, 400, "Candidate must be selected from the directory")
)

func ErrInterviewNotFound() *errx.Error    { return registry.New(ErrCodeInterviewNotFound) }
func ErrSlotTaken() *errx.Error            { return registry.New(ErrCodeSlotTaken) }
func ErrInvalidSlot() *errx.Error          { return registry.New(ErrCodeInvalidSlot) }
func ErrInvalidInterviewType() *errx.Error { return registry.New(ErrCodeInvalidType) }
func ErrInvalidLocation() *errx.Error      { return registry.New(ErrCodeInvalidLocation) }
func ErrDraftIncomplete() *errx.Error      { return registry.New(ErrCodeDraftIncomplete) }
func ErrCandidateNotMatched() *errx.Error  { return registry.New(ErrCodeCandidateNotMatched) }
