package repository

import (
	"context"
	"fmt"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/database"

	"go.uber.org/zap"
)

type CleanerRepository interface {
	FindActive(ctx context.Context) ([]*entity.Cleaner, error)
}

type cleanerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCleanerRepository(db database.PgxIface, log *zap.Logger) CleanerRepository {
	return &cleanerRepository{
		db:  db,
		log: log.With(zap.String("repository", "cleaner")),
	}
}

func (r *cleanerRepository) FindActive(ctx context.Context) ([]*entity.Cleaner, error) {
	query := `
		SELECT id, name_en, name_ar, phone, hourly_rate, telegram_chat_id, is_active, created_at, updated_at
		FROM cleaners
		WHERE is_active = TRUE
		ORDER BY name_en
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active cleaners", zap.Error(err))
		return nil, fmt.Errorf("find active cleaners: %w", err)
	}
	defer rows.Close()

	var cleaners []*entity.Cleaner
	for rows.Next() {
		var c entity.Cleaner
		err := rows.Scan(
			&c.ID,
			&c.NameEn,
			&c.NameAr,
			&c.Phone,
			&c.HourlyRate,
			&c.TelegramChatID,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cleaner row", zap.Error(err))
			return nil, fmt.Errorf("scan cleaner row: %w", err)
		}
		cleaners = append(cleaners, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cleaner rows: %w", err)
	}

	return cleaners, nil
}
