package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Airbnb Inc//Hosting Calendar 0.8.8//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20240115\r\n" +
	"DTEND;VALUE=DATE:20240120\r\n" +
	"SUMMARY:Reserved - Jane Doe\r\n" +
	"UID:HMABC123@airbnb.com\r\n" +
	"DESCRIPTION:Reservation URL\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240201T140000Z\r\n" +
	"DTEND:20240205T100000Z\r\n" +
	"SUMMARY:Airbnb (Not available)\r\n" +
	"UID:HMXYZ789@airbnb.com\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:No dates\r\n" +
	"UID:broken@airbnb.com\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse(t *testing.T) {
	events, err := Parse(strings.NewReader(sampleFeed), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "HMABC123@airbnb.com", events[0].UID)
	assert.Equal(t, "Reserved - Jane Doe", events[0].Summary)
	assert.Equal(t, "Reservation URL", events[0].Description)
	assert.Equal(t, 15, events[0].Start.Day())
	assert.Equal(t, 20, events[0].End.Day())

	assert.Equal(t, "HMXYZ789@airbnb.com", events[1].UID)
	assert.Equal(t, time.Date(2024, 2, 1, 14, 0, 0, 0, time.UTC), events[1].Start.UTC())
	assert.Empty(t, events[1].Description)
}

func TestICalFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed.ics" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	f := NewICalFetcher(server.Client(), zaptest.NewLogger(t))

	t.Run("ok", func(t *testing.T) {
		events, err := f.Fetch(context.Background(), server.URL+"/feed.ics")
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("http error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), server.URL+"/missing.ics")
		assert.Error(t, err)
	})
}

func TestCalendarDate(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	in := time.Date(2024, 1, 20, 1, 30, 0, 0, cairo)

	got := CalendarDate(in)

	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), got)
}
