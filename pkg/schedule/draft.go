package schedule

import (
	"strings"
	"time"

	"github.com/luminahr/portal/pkg/kernel"
)

// InterviewDraft acumula los datos de una entrevista antes de fijarla en
// un slot. Candidato y posición siguen el patrón chip: texto libre con
// autocompletado que se bloquea al coincidir exactamente con el directorio.
type InterviewDraft struct {
	Type InterviewType `json:"type"`

	Candidate       string `json:"candidate"`
	CandidateLocked bool   `json:"candidate_locked"`

	Position       string `json:"position"`
	PositionLocked bool   `json:"position_locked"`

	BusinessUnits []string `json:"business_units"`
	Location      Location `json:"location"`
	Notes         string   `json:"notes"`
}

// NewInterviewDraft crea el borrador con el tipo por defecto
func NewInterviewDraft() InterviewDraft {
	return InterviewDraft{Type: TypeHR}
}

// SetCandidateInput escribe texto libre en el campo candidato. Si el
// chip estaba bloqueado, escribir lo desbloquea.
func (d InterviewDraft) SetCandidateInput(text string) InterviewDraft {
	d.Candidate = text
	d.CandidateLocked = false
	return d
}

// MatchCandidate fija el chip de candidato a un nombre del directorio
func (d InterviewDraft) MatchCandidate(name string) InterviewDraft {
	d.Candidate = name
	d.CandidateLocked = true
	return d
}

// ClearCandidate quita el chip y vacía el campo
func (d InterviewDraft) ClearCandidate() InterviewDraft {
	d.Candidate = ""
	d.CandidateLocked = false
	return d
}

// SetPositionInput escribe texto libre en el campo posición
func (d InterviewDraft) SetPositionInput(text string) InterviewDraft {
	d.Position = text
	d.PositionLocked = false
	return d
}

// MatchPosition fija el chip de posición a un título del catálogo
func (d InterviewDraft) MatchPosition(title string) InterviewDraft {
	d.Position = title
	d.PositionLocked = true
	return d
}

// ClearPosition quita el chip y vacía el campo
func (d InterviewDraft) ClearPosition() InterviewDraft {
	d.Position = ""
	d.PositionLocked = false
	return d
}

// AddBusinessUnit agrega una unidad de negocio sin duplicar
func (d InterviewDraft) AddBusinessUnit(unit string) InterviewDraft {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return d
	}
	for _, existing := range d.BusinessUnits {
		if existing == unit {
			return d
		}
	}
	units := make([]string, len(d.BusinessUnits), len(d.BusinessUnits)+1)
	copy(units, d.BusinessUnits)
	d.BusinessUnits = append(units, unit)
	return d
}

// RemoveBusinessUnit quita una unidad de negocio del chip list
func (d InterviewDraft) RemoveBusinessUnit(unit string) InterviewDraft {
	units := make([]string, 0, len(d.BusinessUnits))
	for _, existing := range d.BusinessUnits {
		if existing != unit {
			units = append(units, existing)
		}
	}
	d.BusinessUnits = units
	return d
}

// IsComplete indica si el borrador puede emitir una entrevista. Las
// entrevistas de tipo BU exigen además al menos una unidad de negocio.
func (d InterviewDraft) IsComplete() bool {
	if !d.CandidateLocked || !d.PositionLocked {
		return false
	}
	if d.Location == "" {
		return false
	}
	if d.Type == TypeBU && len(d.BusinessUnits) == 0 {
		return false
	}
	return true
}

// Build emite el registro de entrevista para el slot dado. El slot llega
// de afuera: lo elige la grilla, no el borrador.
func (d InterviewDraft) Build(day time.Time, slot string) (InterviewRecord, error) {
	if !d.IsComplete() {
		return InterviewRecord{}, ErrDraftIncomplete()
	}
	if !IsValidSlot(slot) {
		return InterviewRecord{}, ErrInvalidSlot().WithDetail("slot", slot)
	}

	return InterviewRecord{
		ID:            kernel.NewInterviewID(),
		CandidateName: d.Candidate,
		PositionTitle: d.Position,
		Type:          d.Type,
		Location:      d.Location,
		BusinessUnits: strings.Join(d.BusinessUnits, ", "),
		Day:           time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		TimeSlot:      slot,
		Notes:         d.Notes,
		CreatedAt:     time.Now(),
	}, nil
}

// FilterSuggestions filtra el directorio por coincidencia de substring,
// sin distinguir mayúsculas. Texto vacío no sugiere nada.
func FilterSuggestions(directory []string, input string) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}

	var matches []string
	for _, entry := range directory {
		if strings.Contains(strings.ToLower(entry), input) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// ExactMatch busca una coincidencia exacta (sin distinguir mayúsculas)
// en el directorio; es la condición para bloquear el chip.
func ExactMatch(directory []string, input string) (string, bool) {
	for _, entry := range directory {
		if strings.EqualFold(entry, strings.TrimSpace(input)) {
			return entry, true
		}
	}
	return "", false
}
