package calendar

import (
	"fmt"
	"io"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
)

// eventDuration is the block length given to exported events; the data model
// only records a start time.
const eventDuration = time.Hour

// WriteICS serializes the event map as an iCalendar document, one VEVENT per
// event, ordered by date and time so output is stable.
func WriteICS(w io.Writer, events Events) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//grovetools//dash//EN")

	keys := make([]string, 0, len(events))
	for key := range events {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		day, err := ParseDateKey(key)
		if err != nil {
			return fmt.Errorf("bad date key %q: %w", key, err)
		}
		for _, ev := range events[key] {
			start, err := eventStart(day, ev.Time)
			if err != nil {
				return fmt.Errorf("event %s: %w", ev.ID, err)
			}
			ve := cal.AddEvent(ev.ID)
			ve.SetSummary(ev.Title)
			ve.SetStartAt(start)
			ve.SetEndAt(start.Add(eventDuration))
			ve.SetDtStampTime(start)
		}
	}

	return cal.SerializeTo(w)
}

// ReadICS parses an iCalendar document back into an event map. Events keep
// their UID as id when present so a round trip is stable; VEVENTs without a
// parseable start are skipped.
func ReadICS(r io.Reader) (Events, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	out := Events{}
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		start = start.In(time.Local)

		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}
		id := ve.Id()

		key := DateKey(start)
		out[key] = append(out[key], Event{
			ID:    id,
			Title: title,
			Time:  start.Format("15:04"),
		})
	}
	return out, nil
}

func eventStart(day time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q: %w", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
