package service

import (
	"strconv"
	"strings"

	"github.com/uai-sistemas/planning-api/internal/models"
)

// minuteOfDay converts a wall-clock "HH:MM" or "HH:MM:SS" value into a
// midnight-relative minute count. Meetings start and end on the same
// calendar day; no cross-midnight wraparound is supported.
func minuteOfDay(clock string) int {
	parts := strings.Split(clock, ":")
	hh := 0
	mm := 0
	if len(parts) > 0 {
		hh, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		mm, _ = strconv.Atoi(parts[1])
	}
	return hh*60 + mm
}

// overlapMinutes returns the shared minutes of two same-day time windows,
// floored at zero. Touching bounds (end == start) do not overlap.
func overlapMinutes(startA, endA, startB, endB string) int {
	start := minuteOfDay(startA)
	if b := minuteOfDay(startB); b > start {
		start = b
	}
	end := minuteOfDay(endA)
	if b := minuteOfDay(endB); b < end {
		end = b
	}
	if end <= start {
		return 0
	}
	return end - start
}

// meetingMinutes resolves a meeting's planned duration: the stored minutes
// column when present (trusted even when inconsistent with the time bounds),
// otherwise end minus start floored at zero.
func meetingMinutes(meeting models.ClassMeeting) int {
	if meeting.Minutes != nil {
		return *meeting.Minutes
	}
	d := minuteOfDay(meeting.EndTime) - minuteOfDay(meeting.StartTime)
	if d < 0 {
		return 0
	}
	return d
}
