package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"azhaboost/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const checkInKeyPrefix = "azhaboost:checkin:"

type CheckInRepository interface {
	Find(ctx context.Context, sessionID string) (*entity.CheckInSession, error)
	Save(ctx context.Context, session *entity.CheckInSession) error
	Delete(ctx context.Context, sessionID string) error
}

type checkInRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
	log *zap.Logger
}

// NewCheckInRepository stores sessions as JSON; every Save refreshes the ttl.
func NewCheckInRepository(rdb redis.Cmdable, ttl time.Duration, log *zap.Logger) CheckInRepository {
	return &checkInRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "check_in")),
	}
}

func (r *checkInRepository) Find(ctx context.Context, sessionID string) (*entity.CheckInSession, error) {
	raw, err := r.rdb.Get(ctx, checkInKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load check-in session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("get check-in session: %w", err)
	}

	var session entity.CheckInSession
	if err := json.Unmarshal(raw, &session); err != nil {
		r.log.Warn("Discarding unreadable check-in session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, nil
	}
	return &session, nil
}

func (r *checkInRepository) Save(ctx context.Context, session *entity.CheckInSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode check-in session: %w", err)
	}

	if err := r.rdb.Set(ctx, checkInKeyPrefix+session.SessionID, raw, r.ttl).Err(); err != nil {
		r.log.Error("Failed to save check-in session",
			zap.Error(err),
			zap.String("session_id", session.SessionID),
		)
		return fmt.Errorf("save check-in session: %w", err)
	}
	return nil
}

func (r *checkInRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, checkInKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete check-in session: %w", err)
	}
	return nil
}
