package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recipeKeyPrefix = "recipe:%d"
	tagsListKey     = "tags:all"
)

const (
	RecipeTTL   = 30 * time.Minute
	TagsListTTL = 10 * time.Minute
)

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(recipeKeyPrefix, recipeID)
}

func TagsKey() string {
	return tagsListKey
}

// Aside implements the cache-aside pattern: on a hit the cached JSON is
// decoded into dest; on a miss fill is run and its result (already in
// dest) is stored under key. Cache failures degrade to the fill path.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fill func() error) error {
	if client == nil {
		return fill()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the fill path.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return fill()
	}

	if err := fill(); err != nil {
		return err
	}

	if encoded, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateRecipe removes a recipe's cached detail.
func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

// InvalidateTags removes the cached tag list.
func InvalidateTags(ctx context.Context) {
	Invalidate(ctx, tagsListKey)
}
