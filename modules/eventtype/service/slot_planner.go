package service

import (
	"sort"
	"time"

	"go-booking-api/core/constants"
	"go-booking-api/core/utils"
	availabilityEntity "go-booking-api/modules/availability/entity"
	eventDto "go-booking-api/modules/event/dto"
	eventEntity "go-booking-api/modules/event/entity"
)

// SlotPlanner lays out fixed-length slots inside weekly availability windows.
type SlotPlanner struct {
	// StepMinutes is the grid slots start on, counted from midnight.
	StepMinutes int
	// Limit caps the number of slots per plan.
	Limit int
}

func NewSlotPlanner() *SlotPlanner {
	return &SlotPlanner{
		StepMinutes: constants.SlotStepMinutes,
		Limit:       constants.GenerateEventsLimit,
	}
}

// Plan returns slots of durationMinutes that start on the grid, fit inside
// an enabled window for their weekday in loc, lie within [from, to) and
// overlap neither busy nor each other. Slots are in chronological order.
func (sp *SlotPlanner) Plan(
	from time.Time,
	to time.Time,
	durationMinutes int,
	windows []availabilityEntity.Availability,
	busy []eventEntity.TimeRange,
	loc *time.Location,
) []eventDto.Slot {
	if durationMinutes <= 0 || !to.After(from) || len(windows) == 0 {
		return []eventDto.Slot{}
	}
	if loc == nil {
		loc = time.UTC
	}

	byDay := make(map[time.Weekday]availabilityEntity.Availability, len(windows))
	for _, w := range windows {
		if w.Enabled {
			byDay[time.Weekday(w.DayOfWeek)] = w
		}
	}

	merged := sp.mergeOverlapping(busy)
	duration := time.Duration(durationMinutes) * time.Minute
	slots := []eventDto.Slot{}

	for day := utils.AtClock(from, 0, loc); day.Before(to); day = utils.AtClock(day.AddDate(0, 0, 1), 0, loc) {
		w, ok := byDay[day.Weekday()]
		if !ok {
			continue
		}
		startMin, err := utils.ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		endMin, err := utils.ParseClock(w.EndTime)
		if err != nil {
			continue
		}

		windowStart := utils.AtClock(day, startMin, loc)
		windowEnd := utils.AtClock(day, endMin, loc)
		if windowEnd.After(to) {
			windowEnd = to
		}

		current := windowStart
		if current.Before(from) {
			current = from
		}
		current = sp.roundToGrid(current, day, loc)

		for !current.Add(duration).After(windowEnd) {
			slot := eventEntity.TimeRange{Start: current, End: current.Add(duration)}
			if blocker, hit := sp.firstOverlap(slot, merged); hit {
				current = sp.roundToGrid(blocker.End, day, loc)
				continue
			}

			slots = append(slots, eventDto.Slot{Start: slot.Start.UTC(), End: slot.End.UTC()})
			if len(slots) >= sp.Limit {
				return slots
			}
			current = sp.roundToGrid(slot.End, day, loc)
		}
	}

	return slots
}

// mergeOverlapping merges overlapping or touching ranges.
func (sp *SlotPlanner) mergeOverlapping(ranges []eventEntity.TimeRange) []eventEntity.TimeRange {
	if len(ranges) == 0 {
		return ranges
	}

	sorted := make([]eventEntity.TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []eventEntity.TimeRange{sorted[0]}
	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
		} else {
			merged = append(merged, current)
		}
	}
	return merged
}

func (sp *SlotPlanner) firstOverlap(slot eventEntity.TimeRange, busy []eventEntity.TimeRange) (eventEntity.TimeRange, bool) {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return b, true
		}
	}
	return eventEntity.TimeRange{}, false
}

// roundToGrid rounds t up to the next grid line measured from day's midnight.
func (sp *SlotPlanner) roundToGrid(t, day time.Time, loc *time.Location) time.Time {
	step := time.Duration(sp.StepMinutes) * time.Minute
	if step <= 0 {
		return t
	}
	midnight := utils.AtClock(day, 0, loc)
	offset := t.Sub(midnight)
	if rem := offset % step; rem != 0 {
		offset += step - rem
	}
	return midnight.Add(offset)
}
