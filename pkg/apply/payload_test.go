package apply_test

import (
	"testing"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/ptrx"
)

// ── BuildPayload ───────────────────────────────────────────────────────────

func TestBuildPayload_DropsBlankSkills(t *testing.T) {
	d := completeDraft()
	d.Skills = []string{"Go", "  ", "SQL", ""}

	p := apply.BuildPayload(d)
	if len(p.Skills) != 2 || p.Skills[0] != "Go" || p.Skills[1] != "SQL" {
		t.Errorf("payload skills = %v, want [Go SQL]", p.Skills)
	}
}

func TestBuildPayload_SkillsNeverNil(t *testing.T) {
	d := apply.NewDraft(kernel.DraftID("d1"))
	p := apply.BuildPayload(d)
	if p.Skills == nil {
		t.Error("skills should serialize as an empty array, not null")
	}
}

func TestBuildPayload_DropsAllBlankRows(t *testing.T) {
	d := completeDraft()
	d.Certifications = append(d.Certifications, apply.CertificationEntry{})
	d.References = append(d.References, apply.ReferenceEntry{Note: "only a note"})

	p := apply.BuildPayload(d)
	if len(p.Certifications) != 1 {
		t.Errorf("all-blank certification row should be dropped, got %d rows", len(p.Certifications))
	}
	if len(p.ProfessionalReferences) != 1 {
		t.Errorf("reference row with only a note should be dropped, got %d rows", len(p.ProfessionalReferences))
	}
}

func TestBuildPayload_FieldMapping(t *testing.T) {
	d := completeDraft()
	p := apply.BuildPayload(d)

	if p.OffreID != d.OfferID {
		t.Errorf("offre_id = %q, want %q", p.OffreID, d.OfferID)
	}
	if p.Education[0].School != "University of Tunis" {
		t.Errorf("education school = %q", p.Education[0].School)
	}
	if p.Experience[0].MajorAchievements != "Shipped the billing system" {
		t.Errorf("major_achievements = %q", p.Experience[0].MajorAchievements)
	}
	if p.Certifications[0].IssuingOrganization != "Amazon" {
		t.Errorf("issuing_organization = %q", p.Certifications[0].IssuingOrganization)
	}
	if p.ProfessionalReferences[0].TitleOrRelationship != "Former manager" {
		t.Errorf("title_or_relationship = %q", p.ProfessionalReferences[0].TitleOrRelationship)
	}
}

// ── SubmissionResponse ─────────────────────────────────────────────────────

func TestResolvedID_PrefersSnakeCase(t *testing.T) {
	r := &apply.SubmissionResponse{ApplicationID: "app-1", ApplicationIDAlt: "app-2"}
	if r.ResolvedID() != "app-1" {
		t.Errorf("ResolvedID() = %q, want app-1", r.ResolvedID())
	}
}

func TestResolvedID_FallsBackToCamelCase(t *testing.T) {
	r := &apply.SubmissionResponse{ApplicationIDAlt: "app-2"}
	if r.ResolvedID() != "app-2" {
		t.Errorf("ResolvedID() = %q, want app-2", r.ResolvedID())
	}
}

func TestResolvedID_Empty(t *testing.T) {
	r := &apply.SubmissionResponse{Success: ptrx.Ptr(true)}
	if r.ResolvedID() != "" {
		t.Errorf("ResolvedID() = %q, want empty", r.ResolvedID())
	}
}
