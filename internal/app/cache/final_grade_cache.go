// Package cache provides redis-backed read caches for computed results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pradipta/siakad/internal/app/models"
)

// ErrCacheMiss is returned when the requested key is not cached
var ErrCacheMiss = errors.New("cache: key not found")

const finalGradePrefix = "finalgrade:"

func finalGradeKey(studentID, offeringID int64) string {
	return fmt.Sprintf("%s%d:%d", finalGradePrefix, offeringID, studentID)
}

// FinalGradeCache stores computed final grades in redis with a TTL.
// Entries are invalidated on every score write, so a cached grade is at
// worst ttl-stale relative to configuration changes that bypass scores.
type FinalGradeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFinalGradeCache creates a cache over the given redis client
func NewFinalGradeCache(client *redis.Client, ttl time.Duration) *FinalGradeCache {
	return &FinalGradeCache{client: client, ttl: ttl}
}

// Get retrieves a cached final grade, ErrCacheMiss when absent
func (c *FinalGradeCache) Get(ctx context.Context, studentID, offeringID int64) (*models.FinalGrade, error) {
	data, err := c.client.Get(ctx, finalGradeKey(studentID, offeringID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var grade models.FinalGrade
	if err := json.Unmarshal(data, &grade); err != nil {
		return nil, fmt.Errorf("failed to decode cached final grade: %w", err)
	}

	return &grade, nil
}

// Set stores a final grade under its student and offering key
func (c *FinalGradeCache) Set(ctx context.Context, grade *models.FinalGrade) error {
	if grade == nil {
		return nil
	}

	data, err := json.Marshal(grade)
	if err != nil {
		return fmt.Errorf("failed to encode final grade: %w", err)
	}

	return c.client.Set(ctx, finalGradeKey(grade.StudentID, grade.OfferingID), data, c.ttl).Err()
}

// Invalidate drops the cached grade for one student and offering
func (c *FinalGradeCache) Invalidate(ctx context.Context, studentID, offeringID int64) error {
	return c.client.Del(ctx, finalGradeKey(studentID, offeringID)).Err()
}

// InvalidateOffering drops every cached grade of an offering. Used after
// configuration changes that affect all students at once.
func (c *FinalGradeCache) InvalidateOffering(ctx context.Context, offeringID int64) error {
	pattern := fmt.Sprintf("%s%d:*", finalGradePrefix, offeringID)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return c.client.Del(ctx, keys...).Err()
}
