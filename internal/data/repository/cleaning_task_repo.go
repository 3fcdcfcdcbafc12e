package repository

import (
	"context"
	"errors"
	"fmt"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CleaningTaskRepository interface {
	Create(ctx context.Context, task *entity.CleaningTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CleaningTask, error)

	// An empty status matches every task.
	FindByStatus(ctx context.Context, status entity.CleaningStatus, limit, offset int) ([]*entity.CleaningTask, error)
	CountByStatus(ctx context.Context, status entity.CleaningStatus) (int64, error)

	SetTrackerID(ctx context.Context, taskID uuid.UUID, trackerID string) error
	AppendPhoto(ctx context.Context, taskID uuid.UUID, url string) ([]string, error)
}

type cleaningTaskRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCleaningTaskRepository(db database.PgxIface, log *zap.Logger) CleaningTaskRepository {
	return &cleaningTaskRepository{
		db:  db,
		log: log.With(zap.String("repository", "cleaning_task")),
	}
}

const cleaningTaskColumns = `id, property_id, booking_id, cleaner_id, title_en, title_ar, description_en, description_ar,
		status, priority, scheduled_date, completed_date, notion_task_id, photos_required,
		COALESCE(photos_uploaded, '{}'), estimated_duration, actual_duration, created_at, updated_at`

func scanCleaningTask(row pgx.Row) (*entity.CleaningTask, error) {
	var t entity.CleaningTask
	err := row.Scan(
		&t.ID,
		&t.PropertyID,
		&t.BookingID,
		&t.CleanerID,
		&t.TitleEn,
		&t.TitleAr,
		&t.DescriptionEn,
		&t.DescriptionAr,
		&t.Status,
		&t.Priority,
		&t.ScheduledDate,
		&t.CompletedDate,
		&t.TrackerTaskID,
		&t.PhotosRequired,
		&t.PhotosUploaded,
		&t.EstimatedDuration,
		&t.ActualDuration,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *cleaningTaskRepository) Create(ctx context.Context, task *entity.CleaningTask) error {
	query := `
		INSERT INTO cleaning_tasks (id, property_id, booking_id, cleaner_id, title_en, title_ar, description_en,
		    description_ar, status, priority, scheduled_date, photos_required, photos_uploaded, estimated_duration,
		    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	photos := task.PhotosUploaded
	if photos == nil {
		photos = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		task.ID,
		task.PropertyID,
		task.BookingID,
		task.CleanerID,
		task.TitleEn,
		task.TitleAr,
		task.DescriptionEn,
		task.DescriptionAr,
		task.Status,
		task.Priority,
		task.ScheduledDate,
		task.PhotosRequired,
		photos,
		task.EstimatedDuration,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create cleaning task",
			zap.Error(err),
			zap.String("property_id", task.PropertyID.String()),
		)
		return fmt.Errorf("create cleaning task: %w", err)
	}

	return nil
}

func (r *cleaningTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CleaningTask, error) {
	query := `SELECT ` + cleaningTaskColumns + ` FROM cleaning_tasks WHERE id = $1`

	task, err := scanCleaningTask(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cleaning task by ID",
			zap.Error(err),
			zap.String("task_id", id.String()),
		)
		return nil, fmt.Errorf("find cleaning task by ID %s: %w", id.String(), err)
	}

	return task, nil
}

func (r *cleaningTaskRepository) FindByStatus(ctx context.Context, status entity.CleaningStatus, limit, offset int) ([]*entity.CleaningTask, error) {
	query := `
		SELECT ` + cleaningTaskColumns + `
		FROM cleaning_tasks
		WHERE ($1::text = '' OR status::text = $1::text)
		ORDER BY scheduled_date ASC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find cleaning tasks",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find cleaning tasks by status %q: %w", status, err)
	}
	defer rows.Close()

	var tasks []*entity.CleaningTask
	for rows.Next() {
		task, err := scanCleaningTask(rows)
		if err != nil {
			r.log.Error("Failed to scan cleaning task row", zap.Error(err))
			return nil, fmt.Errorf("scan cleaning task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cleaning task rows: %w", err)
	}

	return tasks, nil
}

func (r *cleaningTaskRepository) CountByStatus(ctx context.Context, status entity.CleaningStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM cleaning_tasks WHERE ($1::text = '' OR status::text = $1::text)`

	var count int64
	if err := r.db.QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count cleaning tasks",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count cleaning tasks by status %q: %w", status, err)
	}

	return count, nil
}

func (r *cleaningTaskRepository) SetTrackerID(ctx context.Context, taskID uuid.UUID, trackerID string) error {
	query := `UPDATE cleaning_tasks SET notion_task_id = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, taskID, trackerID); err != nil {
		r.log.Error("Failed to store tracker id",
			zap.Error(err),
			zap.String("task_id", taskID.String()),
		)
		return fmt.Errorf("set tracker id for task %s: %w", taskID.String(), err)
	}

	return nil
}

// AppendPhoto adds url to photos_uploaded and returns the resulting list.
// A missing task yields nil, nil.
func (r *cleaningTaskRepository) AppendPhoto(ctx context.Context, taskID uuid.UUID, url string) ([]string, error) {
	query := `
		UPDATE cleaning_tasks
		SET photos_uploaded = array_append(COALESCE(photos_uploaded, '{}'), $2), updated_at = NOW()
		WHERE id = $1
		RETURNING photos_uploaded
	`

	var photos []string
	err := r.db.QueryRow(ctx, query, taskID, url).Scan(&photos)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to append cleaning photo",
			zap.Error(err),
			zap.String("task_id", taskID.String()),
		)
		return nil, fmt.Errorf("append photo to task %s: %w", taskID.String(), err)
	}

	return photos, nil
}
