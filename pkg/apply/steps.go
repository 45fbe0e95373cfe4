package apply

import "strings"

// Los diez pasos del asistente
const (
	StepPersonal = 1 + iota
	StepEducation
	StepExperience
	StepSkills
	StepPractical
	StepCertifications
	StepReferences
	StepCV
	StepVideo
	StepReview

	MinStep = StepPersonal
	MaxStep = StepReview
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsStepValid es el predicado puro que habilita el avance del asistente.
// Total sobre cualquier entero: pasos fuera de [1,10] son inválidos.
func IsStepValid(step int, d Draft) bool {
	switch step {
	case StepPersonal:
		p := d.Personal
		return !blank(p.FullName) &&
			!blank(p.Email) &&
			!blank(p.PhoneNumber) &&
			!blank(p.Nationality) &&
			!blank(p.DateOfBirth) &&
			!blank(p.Address)

	case StepEducation:
		if len(d.Education) == 0 {
			return false
		}
		for _, e := range d.Education {
			if blank(e.Place) || blank(e.Diploma) || blank(e.StartDate) || blank(e.EndDate) {
				return false
			}
		}
		return true

	case StepExperience:
		if len(d.Experience) == 0 {
			return false
		}
		for _, e := range d.Experience {
			if blank(e.Company) || blank(e.JobTitle) || blank(e.StartDate) ||
				blank(e.EndDate) || blank(e.Description) || blank(e.Achievements) {
				return false
			}
		}
		return true

	case StepSkills:
		// una fila de skill en blanco sin completar bloquea el avance
		if len(d.Skills) == 0 {
			return false
		}
		for _, s := range d.Skills {
			if blank(s) {
				return false
			}
		}
		return true

	case StepPractical:
		return !blank(d.PracticalExperience)

	case StepCertifications:
		if len(d.Certifications) == 0 {
			return false
		}
		for _, c := range d.Certifications {
			// url es opcional
			if blank(c.Title) || blank(c.Issuer) || blank(c.Date) {
				return false
			}
		}
		return true

	case StepReferences:
		if len(d.References) == 0 {
			return false
		}
		for _, r := range d.References {
			// note es opcional
			if blank(r.Name) || blank(r.Title) || blank(r.Email) {
				return false
			}
		}
		return true

	case StepCV:
		// un CV recordado de una sesión anterior cuenta como presente
		return d.CV.IsSet()

	case StepVideo:
		return d.Video.IsSet()

	case StepReview:
		return true

	default:
		return false
	}
}

// StepValidity evalúa los diez pasos de una vez, para pintar el indicador
func StepValidity(d Draft) [MaxStep]bool {
	var out [MaxStep]bool
	for step := MinStep; step <= MaxStep; step++ {
		out[step-1] = IsStepValid(step, d)
	}
	return out
}
