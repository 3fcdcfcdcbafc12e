package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AIEditRepository interface {
	Create(ctx context.Context, edit *entity.AIEdit) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AIEdit, error)

	// An empty status matches every edit. Results carry their property.
	FindByStatus(ctx context.Context, status entity.AIEditStatus, limit, offset int) ([]*entity.AIEdit, error)
	CountByStatus(ctx context.Context, status entity.AIEditStatus) (int64, error)

	// UpdateStatus sets status and, when appliedAt is non-nil, applied_at.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AIEditStatus, appliedAt *time.Time) error
}

type aiEditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAIEditRepository(db database.PgxIface, log *zap.Logger) AIEditRepository {
	return &aiEditRepository{
		db:  db,
		log: log.With(zap.String("repository", "ai_edit")),
	}
}

const aiEditColumns = `e.id, e.property_id, e.title_en, e.title_ar, COALESCE(e.bullets_en, '{}'), COALESCE(e.bullets_ar, '{}'),
		e.suggested_price, e.current_rank, e.target_rank, e.competitor_analysis, e.status,
		e.ai_confidence_score, e.created_by, e.applied_at, e.created_at`

func aiEditDest(e *entity.AIEdit) []any {
	return []any{
		&e.ID,
		&e.PropertyID,
		&e.TitleEn,
		&e.TitleAr,
		&e.BulletsEn,
		&e.BulletsAr,
		&e.SuggestedPrice,
		&e.CurrentRank,
		&e.TargetRank,
		&e.CompetitorAnalysis,
		&e.Status,
		&e.ConfidenceScore,
		&e.CreatedBy,
		&e.AppliedAt,
		&e.CreatedAt,
	}
}

func (r *aiEditRepository) Create(ctx context.Context, edit *entity.AIEdit) error {
	query := `
		INSERT INTO ai_edits (id, property_id, title_en, title_ar, bullets_en, bullets_ar, suggested_price,
		    current_rank, target_rank, competitor_analysis, status, ai_confidence_score, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		edit.ID,
		edit.PropertyID,
		edit.TitleEn,
		edit.TitleAr,
		edit.BulletsEn,
		edit.BulletsAr,
		edit.SuggestedPrice,
		edit.CurrentRank,
		edit.TargetRank,
		edit.CompetitorAnalysis,
		edit.Status,
		edit.ConfidenceScore,
		edit.CreatedBy,
		edit.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create AI edit",
			zap.Error(err),
			zap.String("property_id", edit.PropertyID.String()),
		)
		return fmt.Errorf("create AI edit for property %s: %w", edit.PropertyID.String(), err)
	}

	return nil
}

func (r *aiEditRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AIEdit, error) {
	query := `SELECT ` + aiEditColumns + ` FROM ai_edits e WHERE e.id = $1`

	var edit entity.AIEdit
	err := r.db.QueryRow(ctx, query, id).Scan(aiEditDest(&edit)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find AI edit by ID",
			zap.Error(err),
			zap.String("ai_edit_id", id.String()),
		)
		return nil, fmt.Errorf("find AI edit by ID %s: %w", id.String(), err)
	}

	return &edit, nil
}

func (r *aiEditRepository) FindByStatus(ctx context.Context, status entity.AIEditStatus, limit, offset int) ([]*entity.AIEdit, error) {
	query := `
		SELECT ` + aiEditColumns + `, p.name_en, p.name_ar
		FROM ai_edits e
		JOIN properties p ON p.id = e.property_id
		WHERE ($1::text = '' OR e.status::text = $1::text)
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find AI edits",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find AI edits by status %q: %w", status, err)
	}
	defer rows.Close()

	var edits []*entity.AIEdit
	for rows.Next() {
		var edit entity.AIEdit
		property := &entity.Property{}
		dest := append(aiEditDest(&edit), &property.NameEn, &property.NameAr)
		if err := rows.Scan(dest...); err != nil {
			r.log.Error("Failed to scan AI edit row", zap.Error(err))
			return nil, fmt.Errorf("scan AI edit row: %w", err)
		}
		property.ID = edit.PropertyID
		edit.Property = property
		edits = append(edits, &edit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate AI edit rows: %w", err)
	}

	return edits, nil
}

func (r *aiEditRepository) CountByStatus(ctx context.Context, status entity.AIEditStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM ai_edits WHERE ($1::text = '' OR status::text = $1::text)`

	var count int64
	if err := r.db.QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count AI edits",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count AI edits by status %q: %w", status, err)
	}

	return count, nil
}

func (r *aiEditRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AIEditStatus, appliedAt *time.Time) error {
	query := `UPDATE ai_edits SET status = $2, applied_at = COALESCE($3, applied_at) WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, appliedAt)
	if err != nil {
		r.log.Error("Failed to update AI edit status",
			zap.Error(err),
			zap.String("ai_edit_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update AI edit status %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("AI edit %s not found", id.String())
	}

	return nil
}
