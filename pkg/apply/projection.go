package apply

import (
	"time"

	"github.com/luminahr/portal/pkg/kernel"
)

// La proyección es la vista del borrador que se escribe en el storage
// durable. Es deliberadamente lossy: los bytes de los adjuntos nunca van
// en la proyección, solo centinelas {name, has_file}. El video grabado es
// la excepción: sus bytes se guardan base64 bajo una clave aparte y los
// maneja el repositorio, no la proyección.

// FileSentinel recuerda que hubo un archivo sin cargar su contenido
type FileSentinel struct {
	Name    string `json:"name"`
	HasFile bool   `json:"has_file"`
}

// CVMeta es el registro de metadatos del CV guardado bajo su propia clave
type CVMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Projection es el snapshot serializable del borrador
type Projection struct {
	OfferID             string               `json:"offre_id"`
	Personal            PersonalInfo         `json:"personal"`
	Education           []EducationEntry     `json:"education"`
	Experience          []ExperienceEntry    `json:"experience"`
	Skills              []string             `json:"skills"`
	PracticalExperience string               `json:"practical_experience"`
	Certifications      []CertificationEntry `json:"certifications"`
	References          []ReferenceEntry     `json:"references"`
	CV                  *FileSentinel        `json:"cv"`
	Video               *FileSentinel        `json:"video_file"`
	VideoIntroSubmitted bool                 `json:"video_intro_submitted"`
	CurrentStep         int                  `json:"current_step"`
	ParamsConsumed      bool                 `json:"params_consumed"`
	SavedAt             time.Time            `json:"saved_at"`
}

// ShouldPersist evita guardar un borrador completamente en blanco en el
// primer render: hasta que haya nombre o email, no hay nada que recordar.
func ShouldPersist(d Draft) bool {
	return !blank(d.Personal.FullName) || !blank(d.Personal.Email)
}

// Project reduce el borrador a su forma persistible
func Project(d Draft) Projection {
	return Projection{
		OfferID:             d.OfferID,
		Personal:            d.Personal,
		Education:           cloneSlice(d.Education),
		Experience:          cloneSlice(d.Experience),
		Skills:              cloneSlice(d.Skills),
		PracticalExperience: d.PracticalExperience,
		Certifications:      cloneSlice(d.Certifications),
		References:          cloneSlice(d.References),
		CV:                  sentinel(d.CV),
		Video:               sentinel(d.Video),
		VideoIntroSubmitted: d.VideoIntroSubmitted,
		CurrentStep:         d.CurrentStep,
		ParamsConsumed:      d.ParamsConsumed,
		SavedAt:             time.Now(),
	}
}

func sentinel(f FileRef) *FileSentinel {
	if !f.IsSet() {
		return nil
	}
	return &FileSentinel{Name: f.Name, HasFile: true}
}

// RestoreDraft reconstruye un borrador desde su proyección.
//
// El CV vuelve como FileRemembered: nombre/tipo/tamaño del registro de
// metadatos, contenido irrecuperable. El video vuelve como FilePresent
// solo si sus bytes decodificaron; si videoBytes es nil (clave ausente o
// base64 corrupto) tanto la referencia como el flag de enviado se anulan,
// para nunca presentar un video roto como "enviado".
func RestoreDraft(id kernel.DraftID, p Projection, cvMeta *CVMeta, videoBytes []byte) Draft {
	d := Draft{
		ID:                  id,
		OfferID:             p.OfferID,
		Personal:            p.Personal,
		Education:           cloneSlice(p.Education),
		Experience:          cloneSlice(p.Experience),
		Skills:              cloneSlice(p.Skills),
		PracticalExperience: p.PracticalExperience,
		Certifications:      cloneSlice(p.Certifications),
		References:          cloneSlice(p.References),
		CV:                  NoFile(),
		Video:               NoFile(),
		CurrentStep:         p.CurrentStep,
		ParamsConsumed:      p.ParamsConsumed,
		UpdatedAt:           p.SavedAt,
	}

	if d.CurrentStep < MinStep || d.CurrentStep > MaxStep {
		d.CurrentStep = MinStep
	}

	if p.CV != nil && p.CV.HasFile {
		remembered := FileRef{Kind: FileRemembered, Name: p.CV.Name}
		if cvMeta != nil {
			remembered.Name = cvMeta.Name
			remembered.MimeType = cvMeta.Type
			remembered.Size = cvMeta.Size
		}
		d.CV = remembered
	}

	if p.Video != nil && p.Video.HasFile && len(videoBytes) > 0 {
		d.Video = FileRef{
			Kind:     FilePresent,
			Name:     p.Video.Name,
			MimeType: "video/webm",
			Size:     int64(len(videoBytes)),
			Bytes:    videoBytes,
		}
		d.VideoIntroSubmitted = true
	}

	return d
}
