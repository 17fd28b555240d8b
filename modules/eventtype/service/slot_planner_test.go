package service

import (
	"testing"
	"time"

	availabilityEntity "go-booking-api/modules/availability/entity"
	eventDto "go-booking-api/modules/event/dto"
	eventEntity "go-booking-api/modules/event/entity"
)

// 2030-06-03 is a Monday.
var monday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

func window(day int, start, end string) availabilityEntity.Availability {
	return availabilityEntity.Availability{DayOfWeek: day, StartTime: start, EndTime: end, Enabled: true}
}

func at(h, m int) time.Time {
	return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func starts(slots []eventDto.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("Mon 15:04")
	}
	return out
}

func assertStarts(t *testing.T, slots []eventDto.Slot, want ...string) {
	t.Helper()
	got := starts(slots)
	if len(got) != len(want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slots = %v, want %v", got, want)
		}
	}
}

func TestPlanFillsWindowOnGrid(t *testing.T) {
	sp := NewSlotPlanner()
	slots := sp.Plan(monday, monday.AddDate(0, 0, 1), 30,
		[]availabilityEntity.Availability{window(1, "09:00", "11:00")}, nil, time.UTC)
	assertStarts(t, slots, "Mon 09:00", "Mon 09:30", "Mon 10:00", "Mon 10:30")
	for _, s := range slots {
		if s.End.Sub(s.Start) != 30*time.Minute {
			t.Fatalf("slot %v has wrong length", s)
		}
	}
}

func TestPlanLongSlotsDoNotOverlapEachOther(t *testing.T) {
	sp := NewSlotPlanner()
	slots := sp.Plan(monday, monday.AddDate(0, 0, 1), 60,
		[]availabilityEntity.Availability{window(1, "09:00", "11:30")}, nil, time.UTC)
	assertStarts(t, slots, "Mon 09:00", "Mon 10:00")
}

func TestPlanWindowEndingAtMidnight(t *testing.T) {
	sp := NewSlotPlanner()
	slots := sp.Plan(monday, monday.AddDate(0, 0, 2), 60,
		[]availabilityEntity.Availability{window(1, "22:00", "24:00")}, nil, time.UTC)
	assertStarts(t, slots, "Mon 22:00", "Mon 23:00")
	if want := monday.AddDate(0, 0, 1); !slots[1].End.Equal(want) {
		t.Fatalf("last slot ends %s, want %s", slots[1].End, want)
	}
}

func TestPlanSkipsBusyTime(t *testing.T) {
	sp := NewSlotPlanner()
	busy := []eventEntity.TimeRange{
		{Start: at(9, 15), End: at(9, 45)},
		{Start: at(9, 40), End: at(10, 0)},
	}
	slots := sp.Plan(monday, monday.AddDate(0, 0, 1), 30,
		[]availabilityEntity.Availability{window(1, "09:00", "11:00")}, busy, time.UTC)
	assertStarts(t, slots, "Mon 10:00", "Mon 10:30")
}

func TestPlanStartsAfterFrom(t *testing.T) {
	sp := NewSlotPlanner()
	slots := sp.Plan(at(9, 10), monday.AddDate(0, 0, 1), 30,
		[]availabilityEntity.Availability{window(1, "09:00", "10:30")}, nil, time.UTC)
	assertStarts(t, slots, "Mon 09:30", "Mon 10:00")
}

func TestPlanIgnoresDaysWithoutWindows(t *testing.T) {
	sp := NewSlotPlanner()
	disabled := window(2, "09:00", "10:00")
	disabled.Enabled = false
	slots := sp.Plan(monday, monday.AddDate(0, 0, 7), 60,
		[]availabilityEntity.Availability{window(3, "09:00", "10:00"), disabled}, nil, time.UTC)
	assertStarts(t, slots, "Wed 09:00")
}

func TestPlanRespectsLimit(t *testing.T) {
	sp := &SlotPlanner{StepMinutes: 30, Limit: 3}
	slots := sp.Plan(monday, monday.AddDate(0, 0, 7), 30,
		[]availabilityEntity.Availability{window(1, "09:00", "17:00")}, nil, time.UTC)
	if len(slots) != 3 {
		t.Fatalf("len(slots) = %d, want 3", len(slots))
	}
}

func TestPlanReadsWindowsInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	sp := NewSlotPlanner()
	slots := sp.Plan(monday, monday.AddDate(0, 0, 1), 60,
		[]availabilityEntity.Availability{window(1, "09:00", "10:00")}, nil, loc)
	if len(slots) != 1 {
		t.Fatalf("slots = %v", starts(slots))
	}
	if want := time.Date(2030, 6, 3, 13, 0, 0, 0, time.UTC); !slots[0].Start.Equal(want) {
		t.Fatalf("start = %s, want %s", slots[0].Start, want)
	}
}

func TestMergeOverlapping(t *testing.T) {
	sp := NewSlotPlanner()
	merged := sp.mergeOverlapping([]eventEntity.TimeRange{
		{Start: at(11, 0), End: at(12, 0)},
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(10, 0), End: at(10, 30)},
	})
	if len(merged) != 2 || !merged[0].End.Equal(at(10, 30)) {
		t.Fatalf("merged = %+v", merged)
	}
}
