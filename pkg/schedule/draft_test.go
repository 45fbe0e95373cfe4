package schedule_test

import (
	"testing"
	"time"

	"github.com/luminahr/portal/pkg/schedule"
)

func completeInterviewDraft() schedule.InterviewDraft {
	d := schedule.NewInterviewDraft().
		MatchCandidate("Amina Ben Salah").
		MatchPosition("Backend Engineer")
	d.Location = schedule.LocationInPerson
	return d
}

// ── Parse helpers ──────────────────────────────────────────────────────────

func TestParseInterviewType(t *testing.T) {
	for _, s := range []string{"HR", "COMMITTEE", "BU"} {
		if _, err := schedule.ParseInterviewType(s); err != nil {
			t.Errorf("ParseInterviewType(%q) returned error: %v", s, err)
		}
	}
	if _, err := schedule.ParseInterviewType("TECH"); err == nil {
		t.Error("ParseInterviewType(\"TECH\") expected error, got nil")
	}
}

func TestParseLocation(t *testing.T) {
	for _, s := range []string{"VIDEO_CONFERENCE", "IN_PERSON", "PHONE_CALL"} {
		if _, err := schedule.ParseLocation(s); err != nil {
			t.Errorf("ParseLocation(%q) returned error: %v", s, err)
		}
	}
	if _, err := schedule.ParseLocation("HOLOGRAM"); err == nil {
		t.Error("ParseLocation(\"HOLOGRAM\") expected error, got nil")
	}
}

// ── Chip semantics ─────────────────────────────────────────────────────────

func TestDraft_TypingUnlocksChip(t *testing.T) {
	d := schedule.NewInterviewDraft().MatchCandidate("Amina Ben Salah")
	if !d.CandidateLocked {
		t.Fatal("matched candidate should lock the chip")
	}

	d = d.SetCandidateInput("Ami")
	if d.CandidateLocked {
		t.Error("typing over a chip should unlock it")
	}
	if d.Candidate != "Ami" {
		t.Errorf("candidate text = %q", d.Candidate)
	}
}

func TestDraft_ClearCandidate(t *testing.T) {
	d := schedule.NewInterviewDraft().MatchCandidate("Amina Ben Salah").ClearCandidate()
	if d.Candidate != "" || d.CandidateLocked {
		t.Errorf("clear should empty the chip, got %q locked=%v", d.Candidate, d.CandidateLocked)
	}
}

// ── Business units ─────────────────────────────────────────────────────────

func TestDraft_BusinessUnitsDedupe(t *testing.T) {
	d := schedule.NewInterviewDraft().
		AddBusinessUnit("Retail").
		AddBusinessUnit("Corporate").
		AddBusinessUnit("Retail")

	if len(d.BusinessUnits) != 2 {
		t.Errorf("business units = %v, want 2 unique entries", d.BusinessUnits)
	}
}

func TestDraft_BusinessUnitsIgnoreBlank(t *testing.T) {
	d := schedule.NewInterviewDraft().AddBusinessUnit("  ")
	if len(d.BusinessUnits) != 0 {
		t.Errorf("blank unit should be ignored, got %v", d.BusinessUnits)
	}
}

func TestDraft_RemoveBusinessUnit(t *testing.T) {
	d := schedule.NewInterviewDraft().
		AddBusinessUnit("Retail").
		AddBusinessUnit("Corporate").
		RemoveBusinessUnit("Retail")

	if len(d.BusinessUnits) != 1 || d.BusinessUnits[0] != "Corporate" {
		t.Errorf("business units = %v, want [Corporate]", d.BusinessUnits)
	}
}

// ── IsComplete ─────────────────────────────────────────────────────────────

func TestDraft_DefaultTypeIsHR(t *testing.T) {
	if schedule.NewInterviewDraft().Type != schedule.TypeHR {
		t.Error("new draft should default to HR")
	}
}

func TestDraft_IsComplete(t *testing.T) {
	if schedule.NewInterviewDraft().IsComplete() {
		t.Error("empty draft should be incomplete")
	}
	if !completeInterviewDraft().IsComplete() {
		t.Error("draft with candidate, position and location should be complete")
	}
}

func TestDraft_UnlockedChipIsIncomplete(t *testing.T) {
	d := completeInterviewDraft().SetCandidateInput("Amina Ben Salah")
	if d.IsComplete() {
		t.Error("free text without an exact match must not count as a selected candidate")
	}
}

func TestDraft_BUTypeRequiresBusinessUnit(t *testing.T) {
	d := completeInterviewDraft()
	d.Type = schedule.TypeBU
	if d.IsComplete() {
		t.Error("BU interview without business units should be incomplete")
	}

	d = d.AddBusinessUnit("Retail")
	if !d.IsComplete() {
		t.Error("BU interview with a business unit should be complete")
	}
}

// ── Build ──────────────────────────────────────────────────────────────────

func TestDraft_BuildProducesRecord(t *testing.T) {
	d := completeInterviewDraft()
	d.Type = schedule.TypeBU
	d = d.AddBusinessUnit("Retail").AddBusinessUnit("Corporate")

	record, err := d.Build(day(2026, time.January, 7), "10:00")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if record.ID == "" {
		t.Error("record should carry a generated ID")
	}
	if record.CandidateName != "Amina Ben Salah" || record.PositionTitle != "Backend Engineer" {
		t.Errorf("record = %q / %q", record.CandidateName, record.PositionTitle)
	}
	if record.BusinessUnits != "Retail, Corporate" {
		t.Errorf("business units = %q", record.BusinessUnits)
	}
	if record.TimeSlot != "10:00" {
		t.Errorf("time slot = %q", record.TimeSlot)
	}
}

func TestDraft_BuildRejectsIncomplete(t *testing.T) {
	if _, err := schedule.NewInterviewDraft().Build(day(2026, time.January, 7), "10:00"); err == nil {
		t.Error("building an incomplete draft should fail")
	}
}

func TestDraft_BuildRejectsInvalidSlot(t *testing.T) {
	if _, err := completeInterviewDraft().Build(day(2026, time.January, 7), "08:30"); err == nil {
		t.Error("building outside the grid labels should fail")
	}
}

// ── Suggestions ────────────────────────────────────────────────────────────

func TestFilterSuggestions(t *testing.T) {
	directory := []string{"Amina Ben Salah", "Karim Gharbi", "Sami Ben Ali"}

	got := schedule.FilterSuggestions(directory, "ben")
	if len(got) != 2 {
		t.Errorf("FilterSuggestions(ben) = %v, want 2 matches", got)
	}

	if schedule.FilterSuggestions(directory, "  ") != nil {
		t.Error("blank input should suggest nothing")
	}
}

func TestExactMatch(t *testing.T) {
	directory := []string{"Amina Ben Salah", "Karim Gharbi"}

	name, ok := schedule.ExactMatch(directory, "amina ben salah")
	if !ok || name != "Amina Ben Salah" {
		t.Errorf("ExactMatch = %q/%v, want canonical name", name, ok)
	}

	if _, ok := schedule.ExactMatch(directory, "Amina"); ok {
		t.Error("a prefix is not an exact match")
	}
}
