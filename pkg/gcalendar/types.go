package gcalendar

import "time"

// DefaultCalendarID targets the authenticated user's main calendar.
const DefaultCalendarID = "primary"

// CreateEventRequest is the input for creating a Google Calendar event.
// When AllDay is set only the dates of StartTime and EndTime are used and
// EndTime is inclusive.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/Paris"
	AllDay      bool
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
}
