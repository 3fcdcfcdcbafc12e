// Package calendar fetches iCalendar booking feeds.
package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// Event is one VEVENT that has both a start and an end.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]Event, error)
}

type ICalFetcher struct {
	client *http.Client
	log    *zap.Logger
}

func NewICalFetcher(client *http.Client, log *zap.Logger) *ICalFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &ICalFetcher{
		client: client,
		log:    log.With(zap.String("integration", "ical")),
	}
}

func (f *ICalFetcher) Fetch(ctx context.Context, url string) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	return Parse(resp.Body, f.log)
}

// Parse reads a calendar and keeps events with a start and end.
// Events without a UID get a positional key.
func Parse(r io.Reader, log *zap.Logger) ([]Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var events []Event
	for i, ev := range cal.Events() {
		start, err := eventStart(ev)
		if err != nil {
			log.Debug("Skipping event without start", zap.Int("index", i), zap.Error(err))
			continue
		}
		end, err := eventEnd(ev)
		if err != nil {
			log.Debug("Skipping event without end", zap.Int("index", i), zap.Error(err))
			continue
		}

		uid := ev.Id()
		if uid == "" {
			uid = fmt.Sprintf("event-%d", i)
		}

		events = append(events, Event{
			UID:         uid,
			Summary:     propertyValue(ev, ics.ComponentPropertySummary),
			Description: propertyValue(ev, ics.ComponentPropertyDescription),
			Start:       start,
			End:         end,
		})
	}

	return events, nil
}

func eventStart(ev *ics.VEvent) (time.Time, error) {
	if t, err := ev.GetStartAt(); err == nil {
		return t, nil
	}
	return ev.GetAllDayStartAt()
}

func eventEnd(ev *ics.VEvent) (time.Time, error) {
	if t, err := ev.GetEndAt(); err == nil {
		return t, nil
	}
	return ev.GetAllDayEndAt()
}

func propertyValue(ev *ics.VEvent, prop ics.ComponentProperty) string {
	p := ev.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}

// CalendarDate drops the clock part, keeping the date as seen in t's own zone.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
