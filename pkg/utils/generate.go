package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== SESSION ====================

func GenerateSessionID() string {
	return uuid.New().String()
}

// ==================== CODES ====================

// GenerateNumericCode returns a code of the given length without a leading zero.
func GenerateNumericCode(length int) string {
	if length <= 0 {
		length = 6
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	code := fmt.Sprintf("%d", 1+rnd.Intn(9))
	for i := 1; i < length; i++ {
		code += fmt.Sprintf("%d", rnd.Intn(10))
	}

	return code
}

// GenerateTrackerID builds a local task id when no external tracker is configured.
func GenerateTrackerID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_task_%d", prefix, now.UnixMilli())
}
