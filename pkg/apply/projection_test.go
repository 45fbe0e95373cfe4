package apply_test

import (
	"reflect"
	"testing"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/kernel"
)

// ── ShouldPersist ──────────────────────────────────────────────────────────

func TestShouldPersist_BlankDraft(t *testing.T) {
	d := apply.NewDraft(kernel.DraftID("d1"))
	if apply.ShouldPersist(d) {
		t.Error("a blank draft should not be persisted")
	}
}

func TestShouldPersist_NameOrEmail(t *testing.T) {
	withName := apply.NewDraft(kernel.DraftID("d1"))
	withName.Personal.FullName = "Amina"
	if !apply.ShouldPersist(withName) {
		t.Error("a draft with a name should be persisted")
	}

	withEmail := apply.NewDraft(kernel.DraftID("d1"))
	withEmail.Personal.Email = "amina@example.com"
	if !apply.ShouldPersist(withEmail) {
		t.Error("a draft with an email should be persisted")
	}
}

// ── Project ────────────────────────────────────────────────────────────────

func TestProject_AttachmentsBecomeSentinels(t *testing.T) {
	d := completeDraft()
	p := apply.Project(d)

	if p.CV == nil || !p.CV.HasFile || p.CV.Name != "cv.pdf" {
		t.Errorf("cv sentinel = %+v, want {cv.pdf true}", p.CV)
	}
	if p.Video == nil || !p.Video.HasFile {
		t.Errorf("video sentinel = %+v, want present", p.Video)
	}
	if p.SavedAt.IsZero() {
		t.Error("projection should carry a save timestamp")
	}
}

func TestProject_NoAttachments(t *testing.T) {
	d := apply.NewDraft(kernel.DraftID("d1"))
	p := apply.Project(d)
	if p.CV != nil || p.Video != nil {
		t.Error("a draft without attachments should project nil sentinels")
	}
}

// ── RestoreDraft ───────────────────────────────────────────────────────────

func TestRestoreDraft_CVIsLossy(t *testing.T) {
	d := completeDraft()
	p := apply.Project(d)

	meta := &apply.CVMeta{Name: "cv.pdf", Type: "application/pdf", Size: 1024}
	restored := apply.RestoreDraft(d.ID, p, meta, d.Video.Bytes)

	if restored.CV.Kind != apply.FileRemembered {
		t.Errorf("restored CV kind = %s, want REMEMBERED", restored.CV.Kind)
	}
	if restored.CV.Name != "cv.pdf" || restored.CV.MimeType != "application/pdf" || restored.CV.Size != 1024 {
		t.Errorf("restored CV metadata = %+v", restored.CV)
	}
	if len(restored.CV.Bytes) != 0 {
		t.Error("restored CV must not carry content")
	}
}

func TestRestoreDraft_VideoBytesRecovered(t *testing.T) {
	d := completeDraft()
	p := apply.Project(d)

	restored := apply.RestoreDraft(d.ID, p, nil, []byte{9, 9, 9})
	if restored.Video.Kind != apply.FilePresent {
		t.Errorf("restored video kind = %s, want PRESENT", restored.Video.Kind)
	}
	if len(restored.Video.Bytes) != 3 {
		t.Errorf("restored video bytes = %d, want 3", len(restored.Video.Bytes))
	}
	if !restored.VideoIntroSubmitted {
		t.Error("recovered video should keep the submitted flag")
	}
}

func TestRestoreDraft_CorruptVideoFailsSafe(t *testing.T) {
	// a missing or undecodable blob nulls both the reference and the flag
	d := completeDraft()
	p := apply.Project(d)

	restored := apply.RestoreDraft(d.ID, p, nil, nil)
	if restored.Video.Kind != apply.FileNone {
		t.Errorf("restored video kind = %s, want NONE", restored.Video.Kind)
	}
	if restored.VideoIntroSubmitted {
		t.Error("a lost video must not be presented as submitted")
	}
}

func TestRestoreDraft_RoundTripScalars(t *testing.T) {
	// every scalar and repeated field must come back exactly as saved
	d := completeDraft()
	d.OfferID = "offer-7"
	d.CurrentStep = 6
	d.VideoIntroSubmitted = true

	meta := &apply.CVMeta{Name: "cv.pdf", Type: "application/pdf", Size: 1024}
	restored := apply.RestoreDraft(d.ID, apply.Project(d), meta, d.Video.Bytes)

	if restored.Personal != d.Personal {
		t.Errorf("personal = %+v, want %+v", restored.Personal, d.Personal)
	}
	if !reflect.DeepEqual(restored.Education, d.Education) {
		t.Errorf("education = %+v, want %+v", restored.Education, d.Education)
	}
	if !reflect.DeepEqual(restored.Experience, d.Experience) {
		t.Errorf("experience = %+v, want %+v", restored.Experience, d.Experience)
	}
	if !reflect.DeepEqual(restored.Skills, d.Skills) {
		t.Errorf("skills = %v, want %v", restored.Skills, d.Skills)
	}
	if restored.PracticalExperience != d.PracticalExperience {
		t.Errorf("practical experience = %q", restored.PracticalExperience)
	}
	if !reflect.DeepEqual(restored.Certifications, d.Certifications) {
		t.Errorf("certifications = %+v, want %+v", restored.Certifications, d.Certifications)
	}
	if !reflect.DeepEqual(restored.References, d.References) {
		t.Errorf("references = %+v, want %+v", restored.References, d.References)
	}
	if restored.OfferID != "offer-7" || restored.CurrentStep != 6 {
		t.Errorf("restored draft = offer %q step %d", restored.OfferID, restored.CurrentStep)
	}
	if !restored.VideoIntroSubmitted {
		t.Error("video flag must survive the round trip")
	}
}

func TestRestoreDraft_ClampsStep(t *testing.T) {
	p := apply.Project(completeDraft())
	p.CurrentStep = 42
	restored := apply.RestoreDraft(kernel.DraftID("d1"), p, nil, nil)
	if restored.CurrentStep != apply.StepPersonal {
		t.Errorf("out-of-range step should clamp to 1, got %d", restored.CurrentStep)
	}
}

func TestRestoreDraft_KeepsParamsConsumed(t *testing.T) {
	d := apply.NewDraft(kernel.DraftID("d1"))
	d.Personal.FullName = "Amina"
	d = d.ConsumeDeepLink(apply.DeepLink{Step: "4", OfferID: "offer-7"})

	restored := apply.RestoreDraft(d.ID, apply.Project(d), nil, nil)
	if !restored.ParamsConsumed {
		t.Error("params-consumed flag must survive a restore")
	}
	if restored.OfferID != "offer-7" || restored.CurrentStep != 4 {
		t.Errorf("restored draft = offer %q step %d", restored.OfferID, restored.CurrentStep)
	}
}
