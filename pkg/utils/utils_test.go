package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, 9, cfg.Scheduler.OptimizeHour)
		assert.Equal(t, time.Hour, cfg.Scheduler.CalendarSyncEvery)
		assert.Equal(t, 180, cfg.Market.PricingMin)
		assert.Equal(t, "azhaboost_session", cfg.Session.CookieName)
	})

	t.Run("file values and env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "PORT=9090\nDB_HOST=db.internal\nTELEGRAM_BOT_TOKEN=from-file\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")

		cfg, err := LoadConfigFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	})
}

type sampleRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Trigger   string `json:"trigger" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sampleRequest{BookingID: "nope"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Must be a valid UUID", errs["BookingID"])
	assert.Equal(t, "This field is required", errs["Trigger"])
	assert.Equal(t, "BookingID: Must be a valid UUID; Trigger: This field is required", FormatValidationErrors(errs))

	assert.Nil(t, ValidateStruct(sampleRequest{BookingID: "0b5f3f2e-8f5e-4c39-9a43-2f3c6f1f7d11", Trigger: "checkout"}))
}

func TestResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseNotFound(rec, "Booking not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Booking not found", body["error"])

	rec = httptest.NewRecorder()
	ResponseSuccess(rec, "ok", map[string]int{"synced": 2})
	assert.Equal(t, http.StatusOK, rec.Code)
	body = map[string]any{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "error")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("-2", 1))
	assert.Equal(t, 10, ParseInt("x", 10))

	code := GenerateNumericCode(6)
	assert.Len(t, code, 6)
	assert.NotEqual(t, byte('0'), code[0])

	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))

	ctx := SetSessionContext(context.Background(), "abc")
	id, ok := GetSessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
	_, ok = GetSessionIDFromContext(context.Background())
	assert.False(t, ok)
}
