package apply

import "time"

// Operaciones de edición del borrador. Cada operación retorna una copia
// nueva del Draft; los slices se clonan antes de tocarse para que los
// snapshots previos queden intactos.
//
// La edición es deliberadamente permisiva: quitar la última fila de una
// sección obligatoria está permitido. La no-vacuidad la exige el validador
// de pasos al navegar, no el store.

func (d Draft) touched() Draft {
	d.UpdatedAt = time.Now()
	return d
}

// SetOfferID fija la oferta a la que se postula
func (d Draft) SetOfferID(offerID string) Draft {
	d.OfferID = offerID
	return d.touched()
}

// SetPersonalField actualiza un campo de datos personales por nombre de wire
func (d Draft) SetPersonalField(field, value string) (Draft, error) {
	switch field {
	case "full_name":
		d.Personal.FullName = value
	case "email":
		d.Personal.Email = value
	case "country_code":
		d.Personal.PhoneCountryCode = value
	case "phone_number":
		d.Personal.PhoneNumber = value
	case "nationality":
		d.Personal.Nationality = value
	case "date_of_birth":
		d.Personal.DateOfBirth = value
	case "address":
		d.Personal.Address = value
	default:
		return d, ErrInvalidField().WithDetail("field", field).WithDetail("section", "personal")
	}
	return d.touched(), nil
}

// SetPracticalExperience actualiza el texto del paso 5
func (d Draft) SetPracticalExperience(value string) Draft {
	d.PracticalExperience = value
	return d.touched()
}

// AppendEntry agrega una fila en blanco al final de la sección
func (d Draft) AppendEntry(section Section) (Draft, error) {
	switch section {
	case SectionEducation:
		d.Education = append(cloneSlice(d.Education), EducationEntry{})
	case SectionExperience:
		d.Experience = append(cloneSlice(d.Experience), ExperienceEntry{})
	case SectionSkills:
		d.Skills = append(cloneSlice(d.Skills), "")
	case SectionCertifications:
		d.Certifications = append(cloneSlice(d.Certifications), CertificationEntry{})
	case SectionReferences:
		d.References = append(cloneSlice(d.References), ReferenceEntry{})
	default:
		return d, ErrInvalidSection().WithDetail("section", string(section))
	}
	return d.touched(), nil
}

// UpdateEntryField actualiza un campo de la fila i de la sección.
// Para skills el nombre de campo se ignora: la fila es el valor.
func (d Draft) UpdateEntryField(section Section, index int, field, value string) (Draft, error) {
	switch section {
	case SectionEducation:
		if index < 0 || index >= len(d.Education) {
			return d, errIndex(section, index, len(d.Education))
		}
		entries := cloneSlice(d.Education)
		switch field {
		case "place":
			entries[index].Place = value
		case "diploma":
			entries[index].Diploma = value
		case "start_date":
			entries[index].StartDate = value
		case "end_date":
			entries[index].EndDate = value
		default:
			return d, errField(section, field)
		}
		d.Education = entries

	case SectionExperience:
		if index < 0 || index >= len(d.Experience) {
			return d, errIndex(section, index, len(d.Experience))
		}
		entries := cloneSlice(d.Experience)
		switch field {
		case "company":
			entries[index].Company = value
		case "job_title":
			entries[index].JobTitle = value
		case "start_date":
			entries[index].StartDate = value
		case "end_date":
			entries[index].EndDate = value
		case "description":
			entries[index].Description = value
		case "achievements":
			entries[index].Achievements = value
		default:
			return d, errField(section, field)
		}
		d.Experience = entries

	case SectionSkills:
		if index < 0 || index >= len(d.Skills) {
			return d, errIndex(section, index, len(d.Skills))
		}
		entries := cloneSlice(d.Skills)
		entries[index] = value
		d.Skills = entries

	case SectionCertifications:
		if index < 0 || index >= len(d.Certifications) {
			return d, errIndex(section, index, len(d.Certifications))
		}
		entries := cloneSlice(d.Certifications)
		switch field {
		case "title":
			entries[index].Title = value
		case "issuer":
			entries[index].Issuer = value
		case "date":
			entries[index].Date = value
		case "url":
			entries[index].URL = value
		default:
			return d, errField(section, field)
		}
		d.Certifications = entries

	case SectionReferences:
		if index < 0 || index >= len(d.References) {
			return d, errIndex(section, index, len(d.References))
		}
		entries := cloneSlice(d.References)
		switch field {
		case "name":
			entries[index].Name = value
		case "title":
			entries[index].Title = value
		case "email":
			entries[index].Email = value
		case "note":
			entries[index].Note = value
		default:
			return d, errField(section, field)
		}
		d.References = entries

	default:
		return d, ErrInvalidSection().WithDetail("section", string(section))
	}

	return d.touched(), nil
}

// RemoveEntry elimina la fila i preservando el orden relativo del resto
func (d Draft) RemoveEntry(section Section, index int) (Draft, error) {
	switch section {
	case SectionEducation:
		entries, err := removeAt(d.Education, index, section)
		if err != nil {
			return d, err
		}
		d.Education = entries
	case SectionExperience:
		entries, err := removeAt(d.Experience, index, section)
		if err != nil {
			return d, err
		}
		d.Experience = entries
	case SectionSkills:
		entries, err := removeAt(d.Skills, index, section)
		if err != nil {
			return d, err
		}
		d.Skills = entries
	case SectionCertifications:
		entries, err := removeAt(d.Certifications, index, section)
		if err != nil {
			return d, err
		}
		d.Certifications = entries
	case SectionReferences:
		entries, err := removeAt(d.References, index, section)
		if err != nil {
			return d, err
		}
		d.References = entries
	default:
		return d, ErrInvalidSection().WithDetail("section", string(section))
	}
	return d.touched(), nil
}

// AttachCV asocia el CV subido
func (d Draft) AttachCV(f FileRef) Draft {
	d.CV = f
	return d.touched()
}

// AttachVideo asocia el video grabado; marca la intro como enviada solo
// cuando el contenido está realmente disponible
func (d Draft) AttachVideo(f FileRef) Draft {
	d.Video = f
	d.VideoIntroSubmitted = f.Kind == FilePresent
	return d.touched()
}

// ============================================================================
// Helpers
// ============================================================================

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func removeAt[T any](s []T, index int, section Section) ([]T, error) {
	if index < 0 || index >= len(s) {
		return nil, errIndex(section, index, len(s))
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:index]...)
	out = append(out, s[index+1:]...)
	return out, nil
}

func errIndex(section Section, index, length int) error {
	return ErrIndexOutOfRange().
		WithDetail("section", string(section)).
		WithDetail("index", index).
		WithDetail("length", length)
}

func errField(section Section, field string) error {
	return ErrInvalidField().
		WithDetail("section", string(section)).
		WithDetail("field", field)
}
