package entity

import (
	"time"

	"github.com/google/uuid"
)

type CleaningStatus string

const (
	CleaningStatusPending    CleaningStatus = "pending"
	CleaningStatusAssigned   CleaningStatus = "assigned"
	CleaningStatusInProgress CleaningStatus = "in_progress"
	CleaningStatusCompleted  CleaningStatus = "completed"
	CleaningStatusVerified   CleaningStatus = "verified"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type CleaningTask struct {
	Base
	PropertyID        uuid.UUID      `db:"property_id"`
	BookingID         *uuid.UUID     `db:"booking_id"`
	CleanerID         *uuid.UUID     `db:"cleaner_id"`
	TitleEn           string         `db:"title_en"`
	TitleAr           string         `db:"title_ar"`
	DescriptionEn     *string        `db:"description_en"`
	DescriptionAr     *string        `db:"description_ar"`
	Status            CleaningStatus `db:"status"`
	Priority          TaskPriority   `db:"priority"`
	ScheduledDate     *time.Time     `db:"scheduled_date"`
	CompletedDate     *time.Time     `db:"completed_date"`
	TrackerTaskID     *string        `db:"notion_task_id"`
	PhotosRequired    bool           `db:"photos_required"`
	PhotosUploaded    []string       `db:"photos_uploaded"`
	EstimatedDuration int            `db:"estimated_duration"` // minutes
	ActualDuration    *int           `db:"actual_duration"`
}
