package schedule_test

import (
	"testing"
	"time"

	"github.com/luminahr/portal/pkg/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ── TimeSlots ──────────────────────────────────────────────────────────────

func TestTimeSlots_NineHourlyLabels(t *testing.T) {
	if len(schedule.TimeSlots) != 9 {
		t.Fatalf("expected 9 time slots, got %d", len(schedule.TimeSlots))
	}
	if schedule.TimeSlots[0] != "09:00" || schedule.TimeSlots[8] != "17:00" {
		t.Errorf("slots should span 09:00-17:00, got %s..%s",
			schedule.TimeSlots[0], schedule.TimeSlots[8])
	}
}

func TestIsValidSlot(t *testing.T) {
	if !schedule.IsValidSlot("13:00") {
		t.Error("13:00 should be a valid slot")
	}
	for _, s := range []string{"08:00", "13:30", "18:00", "", "noon"} {
		if schedule.IsValidSlot(s) {
			t.Errorf("IsValidSlot(%q) should be false", s)
		}
	}
}

// ── WeekOf ─────────────────────────────────────────────────────────────────

func TestWeekOf_MidWeekAnchorsToMonday(t *testing.T) {
	// Wednesday 2026-01-07 belongs to the week of Monday 2026-01-05
	monday := schedule.WeekOf(day(2026, time.January, 7))
	if !monday.Equal(day(2026, time.January, 5)) {
		t.Errorf("WeekOf(Wed Jan 7) = %s, want Mon Jan 5", monday.Format("2006-01-02"))
	}
}

func TestWeekOf_MondayIsItsOwnAnchor(t *testing.T) {
	monday := schedule.WeekOf(day(2026, time.January, 5))
	if !monday.Equal(day(2026, time.January, 5)) {
		t.Errorf("WeekOf(Monday) = %s, want the same Monday", monday.Format("2006-01-02"))
	}
}

func TestWeekOf_SundayAnchorsToNextWeek(t *testing.T) {
	// Sunday jumps forward to the following Monday
	monday := schedule.WeekOf(day(2026, time.January, 11))
	if !monday.Equal(day(2026, time.January, 12)) {
		t.Errorf("WeekOf(Sun Jan 11) = %s, want Mon Jan 12", monday.Format("2006-01-02"))
	}
}

func TestWeekDays_SevenConsecutiveDays(t *testing.T) {
	days := schedule.WeekDays(day(2026, time.January, 7))
	if !days[0].Equal(day(2026, time.January, 5)) {
		t.Errorf("first day = %s, want Monday Jan 5", days[0].Format("2006-01-02"))
	}
	for i := 1; i < 7; i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Errorf("day %d is not consecutive", i)
		}
	}
}

// ── Grid ───────────────────────────────────────────────────────────────────

func sampleInterview(d time.Time, slot string) schedule.InterviewRecord {
	return schedule.InterviewRecord{
		ID:            "iv-1",
		CandidateName: "Amina Ben Salah",
		PositionTitle: "Backend Engineer",
		Type:          schedule.TypeHR,
		Location:      schedule.LocationVideoConference,
		Day:           d,
		TimeSlot:      slot,
	}
}

func TestGrid_OccupiedSlotLookup(t *testing.T) {
	wed := day(2026, time.January, 7)
	g := schedule.NewGrid(wed, []schedule.InterviewRecord{sampleInterview(wed, "10:00")})

	iv, ok := g.InterviewAt(wed, "10:00")
	if !ok {
		t.Fatal("expected interview at Wed 10:00")
	}
	if iv.CandidateName != "Amina Ben Salah" {
		t.Errorf("candidate = %q", iv.CandidateName)
	}

	if g.IsFree(wed, "10:00") {
		t.Error("occupied slot should not be free")
	}
	if !g.IsFree(wed, "11:00") {
		t.Error("11:00 should be free")
	}
}

func TestGrid_InvalidSlotNeverFree(t *testing.T) {
	g := schedule.NewGrid(day(2026, time.January, 7), nil)
	if g.IsFree(day(2026, time.January, 7), "08:00") {
		t.Error("a label outside the grid is never selectable")
	}
}

func TestGrid_IgnoresInterviewsOutsideWeek(t *testing.T) {
	wed := day(2026, time.January, 7)
	outside := sampleInterview(day(2026, time.January, 14), "10:00")
	g := schedule.NewGrid(wed, []schedule.InterviewRecord{outside})
	if g.Count() != 0 {
		t.Errorf("grid should ignore out-of-week interviews, got %d", g.Count())
	}
}
