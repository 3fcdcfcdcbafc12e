package repository

import (
	"time"

	"azhaboost/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Property     PropertyRepository
	Booking      BookingRepository
	CleaningTask CleaningTaskRepository
	AIEdit       AIEditRepository
	PricingData  PricingDataRepository
	Cleaner      CleanerRepository

	// Redis backed
	Preference PreferenceRepository
	CheckIn    CheckInRepository
	JobLock    JobLockRepository
}

func NewRepository(db database.PgxIface, rdb redis.UniversalClient, checkInTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Property:     NewPropertyRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		CleaningTask: NewCleaningTaskRepository(db, log),
		AIEdit:       NewAIEditRepository(db, log),
		PricingData:  NewPricingDataRepository(db, log),
		Cleaner:      NewCleanerRepository(db, log),
		Preference:   NewPreferenceRepository(rdb, log),
		CheckIn:      NewCheckInRepository(rdb, checkInTTL, log),
		JobLock:      NewJobLockRepository(rdb, log),
	}
}
