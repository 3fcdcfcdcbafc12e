// Package tracker mirrors cleaning tasks into an external task tracker.
package tracker

import (
	"context"
	"fmt"
	"os"
	"time"

	"azhaboost/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Task struct {
	Title       string
	Description string
	Property    string
	DueDate     time.Time
	Priority    string
}

type Tracker interface {
	// CreateTask returns the external id of the new task.
	CreateTask(ctx context.Context, task Task) (string, error)
}

// NewTracker builds a Google Sheets tracker, or a local one when credentials are missing.
func NewTracker(ctx context.Context, cfg utils.TrackerConfig, log *zap.Logger) (Tracker, error) {
	if cfg.CredentialsFile == "" || cfg.SpreadsheetID == "" {
		log.Warn("Task tracker not configured, using local task ids")
		return NewLocalTracker(), nil
	}

	credentialsJSON, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read tracker credentials: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse tracker credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewSheetsTracker(srv, cfg.SpreadsheetID, cfg.Sheet, log), nil
}

// SheetsTracker appends one row per task: id, title, description, property, due date, priority, status.
type SheetsTracker struct {
	service       *sheets.Service
	spreadsheetID string
	sheet         string
	now           func() time.Time
	log           *zap.Logger
}

func NewSheetsTracker(service *sheets.Service, spreadsheetID, sheet string, log *zap.Logger) *SheetsTracker {
	if sheet == "" {
		sheet = "Tasks"
	}
	return &SheetsTracker{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		now:           time.Now,
		log:           log.With(zap.String("integration", "sheets_tracker")),
	}
}

func (s *SheetsTracker) CreateTask(ctx context.Context, task Task) (string, error) {
	id := utils.GenerateTrackerID("sheets", s.now())

	row := &sheets.ValueRange{
		Values: [][]interface{}{{
			id,
			task.Title,
			task.Description,
			task.Property,
			task.DueDate.UTC().Format(time.RFC3339),
			task.Priority,
			"pending",
		}},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.sheet+"!A:G", row).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		s.log.Error("Failed to append tracker row", zap.Error(err), zap.String("task_id", id))
		return "", fmt.Errorf("append tracker row: %w", err)
	}

	return id, nil
}

type LocalTracker struct {
	now func() time.Time
}

func NewLocalTracker() *LocalTracker {
	return &LocalTracker{now: time.Now}
}

func (l *LocalTracker) CreateTask(context.Context, Task) (string, error) {
	return utils.GenerateTrackerID("local", l.now()), nil
}
