package model

import "time"

const sampleDescription = "Lorem ipsum dolor sit amet, consectetur elit lddv norem idjsfjf."

// SampleTasks returns the built-in dataset used when nothing could be loaded
func SampleTasks(now time.Time) []Task {
	today := FormatDate(now)
	yesterday := FormatDate(now.AddDate(0, 0, -1))
	tomorrow := FormatDate(now.AddDate(0, 0, 1))

	return []Task{
		{ID: 1, Title: "Team Meeting", Category: "meeting", Description: sampleDescription,
			Date: today, StartTime: "10:30", EndTime: "12:00"},
		{ID: 2, Title: "Work on Branding", Category: "branding", Description: sampleDescription,
			Date: today, StartTime: "13:00", EndTime: "15:00"},
		{ID: 3, Title: "Make a Report for client", Category: "client", Description: sampleDescription,
			Date: today, StartTime: "15:30", EndTime: "17:00"},
		{ID: 4, Title: "Create a planer", Category: "planer", Description: sampleDescription,
			Date: yesterday, StartTime: "09:00", EndTime: "11:00", IsExpired: true},
		{ID: 5, Title: "Create Treatment Plan", Category: "treatment", Description: sampleDescription,
			Date: tomorrow, StartTime: "10:30", EndTime: "12:00", Timer: NewTimer(45)},
	}
}
