package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"azhaboost/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestNewTracker_Unconfigured(t *testing.T) {
	tr, err := NewTracker(context.Background(), utils.TrackerConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	id, err := tr.CreateTask(context.Background(), Task{Title: "x"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "local_task_"))
}

func TestNewTracker_MissingCredentialsFile(t *testing.T) {
	_, err := NewTracker(context.Background(), utils.TrackerConfig{
		CredentialsFile: "/nonexistent/creds.json",
		SpreadsheetID:   "sheet",
	}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestSheetsTracker_CreateTask(t *testing.T) {
	var appended sheets.ValueRange
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&appended))
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		_ = json.NewEncoder(w).Encode(sheets.AppendValuesResponse{SpreadsheetId: "sid"})
	}))
	defer server.Close()

	srv, err := sheets.NewService(context.Background(), option.WithEndpoint(server.URL), option.WithoutAuthentication())
	require.NoError(t, err)

	tr := NewSheetsTracker(srv, "sid", "", zaptest.NewLogger(t))
	tr.now = func() time.Time { return time.UnixMilli(1705700000000) }

	id, err := tr.CreateTask(context.Background(), Task{
		Title:    "Post-checkout cleaning - Villa",
		Property: "Villa",
		DueDate:  time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC),
		Priority: "high",
	})
	require.NoError(t, err)

	assert.Equal(t, "sheets_task_1705700000000", id)
	assert.Contains(t, path, "/v4/spreadsheets/sid/values/")
	assert.True(t, strings.HasSuffix(path, ":append"))
	require.Len(t, appended.Values, 1)
	assert.Equal(t, id, appended.Values[0][0])
	assert.Equal(t, "2024-01-20T12:00:00Z", appended.Values[0][4])
	assert.Equal(t, "high", appended.Values[0][5])
}

func TestSheetsTracker_AppendFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	srv, err := sheets.NewService(context.Background(), option.WithEndpoint(server.URL), option.WithoutAuthentication())
	require.NoError(t, err)

	_, err = NewSheetsTracker(srv, "sid", "Tasks", zaptest.NewLogger(t)).CreateTask(context.Background(), Task{})
	assert.Error(t, err)
}
