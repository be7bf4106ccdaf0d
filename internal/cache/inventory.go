package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	TrendListKeyPrefix = "trends:sorted:%d:%d"
	UserKeyPrefix      = "user:%d"
)

const (
	// TrendListTTL keeps the hot trend list fresh without hammering the
	// GROUP BY on every read.
	TrendListTTL = 1 * time.Minute
	UserTTL      = 5 * time.Minute
)

// TrendListKey identifies one page of the sorted trend list.
func TrendListKey(limit, offset int) string {
	return fmt.Sprintf(TrendListKeyPrefix, limit, offset)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// InvalidateTrendLists drops every cached trend list page.
func InvalidateTrendLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "trends:sorted:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// InvalidateUser drops the cached user entry.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
