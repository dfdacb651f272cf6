package models

// Blueprint is a named, reusable prebuilt itinerary. Creating a document
// from a blueprint deep-copies its days; blueprints themselves are
// read-only from the document core's perspective.
type Blueprint struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Destination   string     `json:"destination"`
	Description   string     `json:"description"`
	DurationDays  int        `json:"durationDays"`
	DurationLabel string     `json:"durationLabel"`
	Days          []DayEntry `json:"days"`
	Thumbnail     string     `json:"thumbnail,omitempty"`
}
