package models

import "time"

// PsychologyEntry is one free-text journal entry from the psychology log.
// Read-only input to the insight engine, which scans it for emotion keywords.
type PsychologyEntry struct {
	ID        string
	Date      time.Time
	Entry     string
	CreatedAt time.Time
}

// Day returns the entry's date truncated to calendar-day precision.
func (e *PsychologyEntry) Day() time.Time {
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, e.Date.Location())
}
