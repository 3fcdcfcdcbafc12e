package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const jobLockKeyPrefix = "azhaboost:job-lock:"

// JobLockRepository guards a named job across instances.
type JobLockRepository interface {
	// Acquire returns a release token, or "" when another holder owns the lock.
	Acquire(ctx context.Context, job string, ttl time.Duration) (string, error)
	Release(ctx context.Context, job, token string) error
}

// Deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type jobLockRepository struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewJobLockRepository(rdb redis.UniversalClient, log *zap.Logger) JobLockRepository {
	return &jobLockRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "job_lock")),
	}
}

func (r *jobLockRepository) Acquire(ctx context.Context, job string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := r.rdb.SetNX(ctx, jobLockKeyPrefix+job, token, ttl).Result()
	if err != nil {
		r.log.Error("Failed to acquire job lock",
			zap.Error(err),
			zap.String("job", job),
		)
		return "", fmt.Errorf("acquire lock for job %s: %w", job, err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (r *jobLockRepository) Release(ctx context.Context, job, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, r.rdb, []string{jobLockKeyPrefix + job}, token).Err(); err != nil {
		r.log.Error("Failed to release job lock",
			zap.Error(err),
			zap.String("job", job),
		)
		return fmt.Errorf("release lock for job %s: %w", job, err)
	}
	return nil
}
