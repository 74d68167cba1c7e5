package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/sousie/backend/internal/menu"
)

var ErrMenuNotFound = errors.New("no menu for conversation")

// MenuCache keeps the latest menu of each conversation in Redis. Every write
// replaces the stored menu; nothing is merged.
type MenuCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewMenuCache(client *redis.Client) *MenuCache {
	return &MenuCache{redis: client, ttl: 24 * time.Hour}
}

func menuKey(userID, conversationID uuid.UUID) string {
	return fmt.Sprintf("menu:conversation:%s:%s", userID, conversationID)
}

// Save stores m as the conversation's current menu
func (c *MenuCache) Save(ctx context.Context, userID, conversationID uuid.UUID, m *menu.Menu) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal menu: %w", err)
	}
	if err := c.redis.Set(ctx, menuKey(userID, conversationID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save menu to Redis: %w", err)
	}
	return nil
}

// Get returns the conversation's current menu or ErrMenuNotFound
func (c *MenuCache) Get(ctx context.Context, userID, conversationID uuid.UUID) (*menu.Menu, error) {
	data, err := c.redis.Get(ctx, menuKey(userID, conversationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu from Redis: %w", err)
	}

	m := menu.NewMenu()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu: %w", err)
	}
	return m, nil
}

// Delete drops the conversation's menu. Deleting a missing menu is not an error.
func (c *MenuCache) Delete(ctx context.Context, userID, conversationID uuid.UUID) error {
	if err := c.redis.Del(ctx, menuKey(userID, conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to delete menu from Redis: %w", err)
	}
	return nil
}
