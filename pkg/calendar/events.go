// Package calendar owns the date-keyed event map and the month cursor used
// to drive the day grid. Mutations are copy-on-write.
package calendar

import (
	"time"

	"github.com/google/uuid"
)

// dateKeyLayout is the canonical form of a date key, e.g. "2026-09-01".
const dateKeyLayout = "2006-01-02"

// Event is a single dated entry. Time is a display string in "HH:MM" form.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Time  string `json:"time"`
}

// Events maps a date key to that day's ordered event list. A date key never
// maps to an empty list; emptied keys are removed.
type Events map[string][]Event

// DateKey derives the canonical map key for a date.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.Local)
}

// Clone copies the map and its lists.
func (e Events) Clone() Events {
	out := make(Events, len(e))
	for key, list := range e {
		copied := make([]Event, len(list))
		copy(copied, list)
		out[key] = copied
	}
	return out
}

// Add appends a new event to the given date, creating the day's list if
// absent, and returns the updated map.
func (e Events) Add(date time.Time, title, hhmm string) Events {
	out := e.Clone()
	key := DateKey(date)
	out[key] = append(out[key], Event{ID: uuid.NewString(), Title: title, Time: hhmm})
	return out
}

// Delete removes an event from the given date's list. If the list becomes
// empty the date key is dropped from the map. No-op if either is absent.
func (e Events) Delete(dateKey, eventID string) Events {
	out := e.Clone()
	list, ok := out[dateKey]
	if !ok {
		return out
	}
	kept := list[:0]
	for _, ev := range list {
		if ev.ID != eventID {
			kept = append(kept, ev)
		}
	}
	if len(kept) == 0 {
		delete(out, dateKey)
	} else {
		out[dateKey] = kept
	}
	return out
}

// ForDate returns the event list for a date, or an empty list. Read-only.
func (e Events) ForDate(date time.Time) []Event {
	return e[DateKey(date)]
}

// Count reports the total number of events across all dates.
func (e Events) Count() int {
	n := 0
	for _, list := range e {
		n += len(list)
	}
	return n
}
