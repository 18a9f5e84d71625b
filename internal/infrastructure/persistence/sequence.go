package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// nextSequenceValue atomically increments and returns the named sequence.
// The upsert keeps one row per key so concurrent callers never hand out
// the same number twice.
func nextSequenceValue(ctx context.Context, db *gorm.DB, key string) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Raw(
		`INSERT INTO number_sequences (key, value, updated_at) VALUES (?, 1, ?)
		 ON CONFLICT (key) DO UPDATE SET value = number_sequences.value + 1, updated_at = ?
		 RETURNING value`,
		key, time.Now(), time.Now(),
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// nextBusinessNumber formats a yearly sequential business number,
// e.g. ORD-2026-0042.
func nextBusinessNumber(ctx context.Context, db *gorm.DB, prefix string) (string, error) {
	year := time.Now().Year()
	key := fmt.Sprintf("%s:%d", prefix, year)
	value, err := nextSequenceValue(ctx, db, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, value), nil
}
