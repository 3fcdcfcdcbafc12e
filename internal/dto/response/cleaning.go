package response

import (
	"time"

	"azhaboost/internal/data/entity"
)

type CleaningTaskSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ScheduledDate time.Time `json:"scheduled_date"`
	TrackerTaskID *string   `json:"tracker_task_id,omitempty"`
}

type TriggerCleaningResponse struct {
	Task     CleaningTaskSummary `json:"task"`
	Notified int                 `json:"notified"`
}

type CleaningTaskResponse struct {
	ID                string                `json:"id"`
	PropertyID        string                `json:"property_id"`
	BookingID         *string               `json:"booking_id,omitempty"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Status            entity.CleaningStatus `json:"status"`
	StatusLabel       string                `json:"status_label"`
	Priority          entity.TaskPriority   `json:"priority"`
	PriorityLabel     string                `json:"priority_label"`
	ScheduledDate     string                `json:"scheduled_date,omitempty"`
	ScheduledTime     string                `json:"scheduled_time,omitempty"`
	TrackerTaskID     *string               `json:"tracker_task_id,omitempty"`
	PhotosRequired    bool                  `json:"photos_required"`
	PhotosUploaded    []string              `json:"photos_uploaded"`
	EstimatedDuration int                   `json:"estimated_duration"`
}

type PhotoUploadResponse struct {
	TaskID string   `json:"task_id"`
	URL    string   `json:"url"`
	Photos []string `json:"photos"`
}
