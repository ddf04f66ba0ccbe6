package expiry

import (
	"math"
	"time"
)

const (
	// SoonThresholdDays is the last day offset still reported as "expiring".
	SoonThresholdDays = 3

	day = 24 * time.Hour
)

type (
	// Bucket is the classification used when answering voice questions.
	// Already expired items fall into BucketToday.
	Bucket string

	// Status is the stored-status classification used by listings and stats.
	Status string
)

const (
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketSoon     Bucket = "soon"
	BucketFresh    Bucket = "fresh"

	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring"
	StatusFresh    Status = "fresh"
)

// DateOf drops the time of day, keeping the calendar date t has in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ExpiryDate(preparationDate time.Time, daysToExpiry int) time.Time {
	return DateOf(preparationDate).AddDate(0, 0, daysToExpiry)
}

// DaysUntil returns ceil(expiryDate - today) in whole days.
func DaysUntil(expiryDate, today time.Time) int {
	diff := DateOf(expiryDate).Sub(DateOf(today))
	return int(math.Ceil(float64(diff) / float64(day)))
}

func DaysUntilExpiry(preparationDate time.Time, daysToExpiry int, today time.Time) int {
	return DaysUntil(ExpiryDate(preparationDate, daysToExpiry), today)
}

func BucketOf(diffDays int) Bucket {
	switch {
	case diffDays <= 0:
		return BucketToday
	case diffDays == 1:
		return BucketTomorrow
	case diffDays <= SoonThresholdDays:
		return BucketSoon
	default:
		return BucketFresh
	}
}

func StatusOf(diffDays int) Status {
	switch {
	case diffDays < 0:
		return StatusExpired
	case diffDays <= SoonThresholdDays:
		return StatusExpiring
	default:
		return StatusFresh
	}
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusExpired, StatusExpiring, StatusFresh:
		return Status(s), true
	}
	return "", false
}
