package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix = "profile:%d"
	PromptKeyPrefix  = "prompt:%d"

	PublishedListKey  = "prompts:published"
	CategoryCountsKey = "prompts:categories"
)

const (
	ProfileTTL       = 5 * time.Minute
	PromptTTL        = 30 * time.Minute
	ListTTL          = 1 * time.Minute
	CategoryCountTTL = 5 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func PromptKey(promptID uint) string {
	return fmt.Sprintf(PromptKeyPrefix, promptID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

// InvalidatePrompt drops the cached prompt together with the listing and
// category aggregates, so the next read returns authoritative counters.
func InvalidatePrompt(ctx context.Context, promptID uint) {
	Invalidate(ctx, PromptKey(promptID))
	Invalidate(ctx, PublishedListKey)
	Invalidate(ctx, CategoryCountsKey)
}
