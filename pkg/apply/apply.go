// Package apply contiene el modelo del asistente de postulación:
// el borrador, sus operaciones de edición, el validador de pasos y
// la proyección persistible.
package apply

import (
	"net/http"
	"time"

	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/kernel"
)

// ============================================================================
// FileRef - unión etiquetada para adjuntos
// ============================================================================

// FileRefKind distingue los tres estados posibles de un adjunto
type FileRefKind string

const (
	// FileNone: sin archivo
	FileNone FileRefKind = "NONE"
	// FilePresent: archivo con contenido disponible (bytes o clave de storage)
	FilePresent FileRefKind = "PRESENT"
	// FileRemembered: se recuerda que hubo un archivo, pero el contenido
	// no es recuperable (restauración con pérdida)
	FileRemembered FileRefKind = "REMEMBERED"
)

// FileRef referencia un adjunto del borrador
type FileRef struct {
	Kind       FileRefKind `json:"kind"`
	Name       string      `json:"name,omitempty"`
	MimeType   string      `json:"mime_type,omitempty"`
	Size       int64       `json:"size,omitempty"`
	StorageKey string      `json:"-"`
	Bytes      []byte      `json:"-"`
}

// NoFile es la referencia vacía
func NoFile() FileRef {
	return FileRef{Kind: FileNone}
}

// IsSet indica si hay un archivo (presente o recordado)
func (f FileRef) IsSet() bool {
	return f.Kind == FilePresent || f.Kind == FileRemembered
}

// HasContent indica si el contenido del archivo está disponible
func (f FileRef) HasContent() bool {
	return f.Kind == FilePresent && (len(f.Bytes) > 0 || f.StorageKey != "")
}

// ============================================================================
// Draft - borrador de postulación
// ============================================================================

// PersonalInfo son los datos personales del paso 1
type PersonalInfo struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"country_code"`
	PhoneNumber      string `json:"phone_number"`
	Nationality      string `json:"nationality"`
	DateOfBirth      string `json:"date_of_birth"`
	Address          string `json:"address"`
}

// EducationEntry es una fila de la sección de estudios
type EducationEntry struct {
	Place     string `json:"place"`
	Diploma   string `json:"diploma"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ExperienceEntry es una fila de la sección de experiencia
type ExperienceEntry struct {
	Company      string `json:"company"`
	JobTitle     string `json:"job_title"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
	Achievements string `json:"achievements"`
}

// CertificationEntry es una fila de la sección de certificaciones
type CertificationEntry struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

// ReferenceEntry es una fila de la sección de referencias
type ReferenceEntry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
	Note  string `json:"note,omitempty"`
}

// Draft es el borrador completo, incluido el estado del asistente.
// Todas las operaciones de edición retornan una copia nueva; el valor
// recibido nunca se muta.
type Draft struct {
	ID kernel.DraftID `json:"id"`

	// OfferID vacío significa postulación espontánea
	OfferID string `json:"offre_id"`

	Personal            PersonalInfo         `json:"personal"`
	Education           []EducationEntry     `json:"education"`
	Experience          []ExperienceEntry    `json:"experience"`
	Skills              []string             `json:"skills"`
	PracticalExperience string               `json:"practical_experience"`
	Certifications      []CertificationEntry `json:"certifications"`
	References          []ReferenceEntry     `json:"references"`

	CV                  FileRef `json:"cv"`
	Video               FileRef `json:"video_file"`
	VideoIntroSubmitted bool    `json:"video_intro_submitted"`

	CurrentStep    int  `json:"current_step"`
	ParamsConsumed bool `json:"params_consumed"`

	UpdatedAt time.Time `json:"updated_at"`
}

// defaultCountryCode precarga el selector de país del teléfono
const defaultCountryCode = "+216"

// NewDraft crea un borrador en blanco apuntando al paso 1
func NewDraft(id kernel.DraftID) Draft {
	return Draft{
		ID: id,
		Personal: PersonalInfo{
			PhoneCountryCode: defaultCountryCode,
		},
		CV:          NoFile(),
		Video:       NoFile(),
		CurrentStep: MinStep,
		UpdatedAt:   time.Now(),
	}
}

// Reset descarta todo el contenido y vuelve al paso 1, conservando el ID
func (d Draft) Reset() Draft {
	return NewDraft(d.ID)
}

// ============================================================================
// Sections
// ============================================================================

// Section identifica las secciones repetibles del borrador
type Section string

const (
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionReferences     Section = "references"
)

// ParseSection valida el nombre de una sección
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionEducation, SectionExperience, SectionSkills, SectionCertifications, SectionReferences:
		return Section(s), nil
	default:
		return "", ErrInvalidSection().WithDetail("section", s)
	}
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("APPLY")

var (
	CodeDraftNotFound    = ErrRegistry.Register("DRAFT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application draft not found")
	CodeInvalidSection   = ErrRegistry.Register("INVALID_SECTION", errx.TypeValidation, http.StatusBadRequest, "Unknown draft section")
	CodeInvalidField     = ErrRegistry.Register("INVALID_FIELD", errx.TypeValidation, http.StatusBadRequest, "Unknown field for this section")
	CodeIndexOutOfRange  = ErrRegistry.Register("INDEX_OUT_OF_RANGE", errx.TypeValidation, http.StatusBadRequest, "Entry index out of range")
	CodeInvalidStep      = ErrRegistry.Register("INVALID_STEP", errx.TypeValidation, http.StatusBadRequest, "Step must be between 1 and 10")
	CodeStepNotReachable = ErrRegistry.Register("STEP_NOT_REACHABLE", errx.TypeBusiness, http.StatusUnprocessableEntity, "Cannot skip ahead more than one step")
	CodeFileTooLarge     = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Uploaded file exceeds the size limit")
	CodeNoFileAttached   = ErrRegistry.Register("NO_FILE_ATTACHED", errx.TypeBusiness, http.StatusUnprocessableEntity, "No file attached to the draft")
)

func ErrDraftNotFound() *errx.Error {
	return ErrRegistry.New(CodeDraftNotFound)
}

func ErrInvalidSection() *errx.Error {
	return ErrRegistry.New(CodeInvalidSection)
}

func ErrInvalidField() *errx.Error {
	return ErrRegistry.New(CodeInvalidField)
}

func ErrIndexOutOfRange() *errx.Error {
	return ErrRegistry.New(CodeIndexOutOfRange)
}

func ErrInvalidStep() *errx.Error {
	return ErrRegistry.New(CodeInvalidStep)
}

func ErrStepNotReachable() *errx.Error {
	return ErrRegistry.New(CodeStepNotReachable)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrNoFileAttached() *errx.Error {
	return ErrRegistry.New(CodeNoFileAttached)
}
