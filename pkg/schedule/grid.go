package schedule

import (
	"time"
)

// TimeSlots etiquetas fijas de la grilla semanal, una por hora laboral
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// IsValidSlot indica si la etiqueta pertenece a la grilla
func IsValidSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// WeekOf retorna el lunes de la semana mostrada para la fecha dada,
// normalizado a medianoche. El domingo ancla a la semana siguiente.
func WeekOf(date time.Time) time.Time {
	currentDay := int(date.Weekday())

	var daysUntilMonday int
	if currentDay == 0 {
		daysUntilMonday = 1
	} else {
		daysUntilMonday = 1 - currentDay
	}

	monday := date.AddDate(0, 0, daysUntilMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// WeekDays los 7 días mostrados a partir del lunes de anclaje
func WeekDays(date time.Time) [7]time.Time {
	monday := WeekOf(date)
	var days [7]time.Time
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// Grid la matriz semanal día × slot. Cada celda contiene a lo sumo una
// entrevista; la unicidad por slot la garantiza quien la construye.
type Grid struct {
	Monday     time.Time
	interviews map[slotKey]InterviewRecord
}

type slotKey struct {
	day  string
	slot string
}

func keyFor(day time.Time, slot string) slotKey {
	return slotKey{day: day.Format("2006-01-02"), slot: slot}
}

// NewGrid arma la grilla de la semana que contiene date con las
// entrevistas dadas. Entrevistas fuera de la semana se ignoran.
func NewGrid(date time.Time, interviews []InterviewRecord) *Grid {
	monday := WeekOf(date)
	sunday := monday.AddDate(0, 0, 7)

	g := &Grid{
		Monday:     monday,
		interviews: make(map[slotKey]InterviewRecord),
	}
	for _, iv := range interviews {
		if iv.Day.Before(monday) || !iv.Day.Before(sunday) {
			continue
		}
		g.interviews[keyFor(iv.Day, iv.TimeSlot)] = iv
	}
	return g
}

// InterviewAt retorna la entrevista del slot, si existe
func (g *Grid) InterviewAt(day time.Time, slot string) (InterviewRecord, bool) {
	iv, ok := g.interviews[keyFor(day, slot)]
	return iv, ok
}

// IsFree indica si el slot se puede proponer para una nueva entrevista
func (g *Grid) IsFree(day time.Time, slot string) bool {
	if !IsValidSlot(slot) {
		return false
	}
	_, occupied := g.interviews[keyFor(day, slot)]
	return !occupied
}

// Count cantidad de entrevistas de la semana
func (g *Grid) Count() int {
	return len(g.interviews)
}
