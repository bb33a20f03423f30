package models

// EventType enumerates the kinds of Kıraathane events.
type EventType string

const (
	EventBookClub     EventType = "BOOK_CLUB"
	EventAuthorTalk   EventType = "AUTHOR_TALK"
	EventReadingHour  EventType = "READING_HOUR"
	EventWorkshop     EventType = "WORKSHOP"
	EventChildrenHour EventType = "CHILDREN_HOUR"
	EventOther        EventType = "OTHER"
)

var eventTypeLabels = map[EventType]string{
	EventBookClub:     "Kitap Kulübü",
	EventAuthorTalk:   "Yazar Söyleşisi",
	EventReadingHour:  "Okuma Saati",
	EventWorkshop:     "Atölye",
	EventChildrenHour: "Çocuk Saati",
	EventOther:        "Diğer",
}

func (t EventType) Label() string {
	if l, ok := eventTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Kiraathane is a community reading house.
type Kiraathane struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address,omitempty"`
}

// KiraathaneEvent is an event hosted by a Kiraathane.
type KiraathaneEvent struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	EventDate           Timestamp `json:"eventDate"`
	EndDate             Timestamp `json:"endDate"`
	EventType           EventType `json:"eventType"`
	Capacity            int       `json:"capacity"`
	RegisteredAttendees int       `json:"registeredAttendees"`
	KiraathaneID        int64     `json:"kiraathaneId"`
}

// SeatsLeft is never negative, even when the backend overbooks.
func (e *KiraathaneEvent) SeatsLeft() int {
	return max(e.Capacity-e.RegisteredAttendees, 0)
}

// EventRegistration is one user's registration for one event.
type EventRegistration struct {
	ID               int64            `json:"id"`
	EventID          int64            `json:"eventId"`
	UserID           int64            `json:"userId"`
	Username         string           `json:"username,omitempty"`
	AttendanceStatus AttendanceStatus `json:"attendanceStatus"`
	AttendanceNotes  string           `json:"attendanceNotes,omitempty"`
	CheckedInAt      Timestamp        `json:"checkedInAt"`
	CheckedInBy      string           `json:"checkedInBy,omitempty"`
	RegisteredAt     Timestamp        `json:"registeredAt"`
}
