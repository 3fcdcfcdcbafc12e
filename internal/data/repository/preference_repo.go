package repository

import (
	"context"
	"errors"
	"fmt"

	"azhaboost/pkg/i18n"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PreferenceKeyPrefix matches the storage key the web client uses for its local copy.
const PreferenceKeyPrefix = "azhaboost-language:"

type PreferenceRepository interface {
	// Get returns the stored value verbatim, "" when nothing is stored.
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID string, lang i18n.Language) error
}

type preferenceRepository struct {
	rdb redis.Cmdable
	log *zap.Logger
}

func NewPreferenceRepository(rdb redis.Cmdable, log *zap.Logger) PreferenceRepository {
	return &preferenceRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "preference")),
	}
}

func (r *preferenceRepository) Get(ctx context.Context, sessionID string) (string, error) {
	value, err := r.rdb.Get(ctx, PreferenceKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		r.log.Error("Failed to read language preference",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return "", fmt.Errorf("get language preference: %w", err)
	}
	return value, nil
}

// Set persists without expiry.
func (r *preferenceRepository) Set(ctx context.Context, sessionID string, lang i18n.Language) error {
	if err := r.rdb.Set(ctx, PreferenceKeyPrefix+sessionID, string(lang), 0).Err(); err != nil {
		r.log.Error("Failed to store language preference",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("language", string(lang)),
		)
		return fmt.Errorf("set language preference: %w", err)
	}
	return nil
}
