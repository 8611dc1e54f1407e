package models

// Weekdays lists teaching days in timetable order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeSlot is one recurring weekly class.
type TimeSlot struct {
	ID      string `db:"id" json:"id"`
	Day     string `db:"day" json:"day"`
	Time    string `db:"time_range" json:"time"`
	Subject string `db:"subject" json:"subject"`
	Batch   string `db:"batch" json:"batch"`
	Room    string `db:"room" json:"room"`
}

// WeekdayIndex returns the position of day in Weekdays, or -1.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}
