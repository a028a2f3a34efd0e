package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uai-sistemas/planning-api/internal/models"
)

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 0, minuteOfDay("00:00"))
	assert.Equal(t, 510, minuteOfDay("08:30"))
	assert.Equal(t, 510, minuteOfDay("08:30:00"))
	assert.Equal(t, 1439, minuteOfDay("23:59"))
}

func TestOverlapMinutes(t *testing.T) {
	cases := []struct {
		name                       string
		startA, endA, startB, endB string
		want                       int
	}{
		{"identical windows", "08:00", "10:00", "08:00", "10:00", 120},
		{"partial overlap", "08:00", "10:00", "09:30", "11:30", 30},
		{"contained window", "08:00", "12:00", "09:00", "10:00", 60},
		{"touching bounds", "08:00", "10:00", "10:00", "12:00", 0},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", 0},
		{"order independent", "09:30", "11:30", "08:00", "10:00", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, overlapMinutes(tc.startA, tc.endA, tc.startB, tc.endB))
		})
	}
}

func TestMeetingMinutes(t *testing.T) {
	derived := models.ClassMeeting{StartTime: "08:00", EndTime: "09:40"}
	assert.Equal(t, 100, meetingMinutes(derived))

	stored := models.ClassMeeting{StartTime: "08:00", EndTime: "09:40", Minutes: intPtr(90)}
	assert.Equal(t, 90, meetingMinutes(stored))

	inverted := models.ClassMeeting{StartTime: "10:00", EndTime: "08:00"}
	assert.Equal(t, 0, meetingMinutes(inverted))
}
