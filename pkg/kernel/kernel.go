// Package kernel contiene los tipos compartidos entre dominios.
package kernel

import "github.com/google/uuid"

// DraftID identifica un borrador de postulación
type DraftID string

// NewDraftID genera un nuevo DraftID
func NewDraftID() DraftID {
	return DraftID(uuid.NewString())
}

func (id DraftID) String() string {
	return string(id)
}

// ApplicationID identifica una postulación enviada
type ApplicationID string

// NewApplicationID genera un nuevo ApplicationID
func NewApplicationID() ApplicationID {
	return ApplicationID(uuid.NewString())
}

func (id ApplicationID) String() string {
	return string(id)
}

// InterviewID identifica una entrevista agendada
type InterviewID string

// NewInterviewID genera un nuevo InterviewID
func NewInterviewID() InterviewID {
	return InterviewID(uuid.NewString())
}

func (id InterviewID) String() string {
	return string(id)
}

// UserID identifica a un usuario del staff (emitido por el IdP externo)
type UserID string

func (id UserID) String() string {
	return string(id)
}
