package apply

// El payload de envío usa los nombres de campo del contrato del backend
// de postulaciones (snake_case, nombres en francés para la oferta).

type EducationPayload struct {
	School    string `json:"school"`
	Diploma   string `json:"diploma"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GPA       string `json:"gpa"`
}

type ExperiencePayload struct {
	Company           string `json:"company"`
	JobTitle          string `json:"job_title"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Description       string `json:"description"`
	MajorAchievements string `json:"major_achievements"`
	Location          string `json:"location"`
}

type CertificationPayload struct {
	CertificateTitle    string `json:"certificate_title"`
	IssuingOrganization string `json:"issuing_organization"`
	DateReceived        string `json:"date_received"`
	CertificateURL      string `json:"certificate_url"`
}

type ReferencePayload struct {
	Name                string `json:"name"`
	TitleOrRelationship string `json:"title_or_relationship"`
	Email               string `json:"email"`
	Note                string `json:"note"`
}

// ApplicationPayload es la postulación en su forma de wire
type ApplicationPayload struct {
	OffreID                string                 `json:"offre_id"`
	FullName               string                 `json:"full_name"`
	Email                  string                 `json:"email"`
	CountryCode            string                 `json:"country_code"`
	PhoneNumber            string                 `json:"phone_number"`
	Nationality            string                 `json:"nationality"`
	DateOfBirth            string                 `json:"date_of_birth"`
	Address                string                 `json:"address"`
	Education              []EducationPayload     `json:"education"`
	Experience             []ExperiencePayload    `json:"experience"`
	Skills                 []string               `json:"skills"`
	PracticalExperience    string                 `json:"practical_experience"`
	Certifications         []CertificationPayload `json:"certifications"`
	ProfessionalReferences []ReferencePayload     `json:"professional_references"`
}

// BuildPayload proyecta el borrador a la forma del backend. Las filas en
// blanco de skills, certificaciones y referencias se descartan recién acá:
// durante la edición el borrador las conserva tal cual.
func BuildPayload(d Draft) ApplicationPayload {
	p := ApplicationPayload{
		OffreID:             d.OfferID,
		FullName:            d.Personal.FullName,
		Email:               d.Personal.Email,
		CountryCode:         d.Personal.PhoneCountryCode,
		PhoneNumber:         d.Personal.PhoneNumber,
		Nationality:         d.Personal.Nationality,
		DateOfBirth:         d.Personal.DateOfBirth,
		Address:             d.Personal.Address,
		PracticalExperience: d.PracticalExperience,
		Skills:              []string{},
	}

	for _, e := range d.Education {
		p.Education = append(p.Education, EducationPayload{
			School:    e.Place,
			Diploma:   e.Diploma,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		})
	}

	for _, e := range d.Experience {
		p.Experience = append(p.Experience, ExperiencePayload{
			Company:           e.Company,
			JobTitle:          e.JobTitle,
			StartDate:         e.StartDate,
			EndDate:           e.EndDate,
			Description:       e.Description,
			MajorAchievements: e.Achievements,
		})
	}

	for _, s := range d.Skills {
		if !blank(s) {
			p.Skills = append(p.Skills, s)
		}
	}

	for _, c := range d.Certifications {
		if blank(c.Title) && blank(c.Issuer) && blank(c.Date) {
			continue
		}
		p.Certifications = append(p.Certifications, CertificationPayload{
			CertificateTitle:    c.Title,
			IssuingOrganization: c.Issuer,
			DateReceived:        c.Date,
			CertificateURL:      c.URL,
		})
	}

	for _, r := range d.References {
		if blank(r.Name) && blank(r.Title) && blank(r.Email) {
			continue
		}
		p.ProfessionalReferences = append(p.ProfessionalReferences, ReferencePayload{
			Name:                r.Name,
			TitleOrRelationship: r.Title,
			Email:               r.Email,
			Note:                r.Note,
		})
	}

	return p
}

// SubmissionResponse es la respuesta del backend de postulaciones. El
// campo success es opcional y el ID puede venir bajo dos nombres; la
// interpretación de éxito vive en el pipeline de envío.
type SubmissionResponse struct {
	Success          *bool  `json:"success,omitempty"`
	ApplicationID    string `json:"application_id,omitempty"`
	ApplicationIDAlt string `json:"applicationId,omitempty"`
	Message          string `json:"message,omitempty"`
}

// ResolvedID retorna el identificador de la postulación bajo cualquiera
// de sus dos nombres de wire
func (r *SubmissionResponse) ResolvedID() string {
	if r.ApplicationID != "" {
		return r.ApplicationID
	}
	return r.ApplicationIDAlt
}
