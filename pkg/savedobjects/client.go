// Package savedobjects provides a redis-backed object store used as the
// saved-objects capability in the services bundle, plus an encrypted store
// for action credentials layered on top of it.
package savedobjects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

var (
	ErrNotFound      = errors.New("saved object not found")
	ErrAlreadyExists = errors.New("saved object already exists")
)

type RedisClient struct {
	client redis.UniversalClient
}

func NewRedisClient(client redis.UniversalClient) *RedisClient {
	return &RedisClient{client: client}
}

func key(objectType, id string) string {
	return "saved_object:" + objectType + ":" + id
}

func (c *RedisClient) Get(ctx context.Context, objectType, id string) (map[string]any, error) {
	raw, err := c.client.Get(ctx, key(objectType, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s/%s: %w", objectType, id, ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	var attributes map[string]any
	if err := json.Unmarshal([]byte(raw), &attributes); err != nil {
		return nil, fmt.Errorf("failed to decode saved object %s/%s: %w", objectType, id, err)
	}

	return attributes, nil
}

func (c *RedisClient) Create(ctx context.Context, objectType, id string, attributes map[string]any) error {
	raw, err := json.Marshal(attributes)
	if err != nil {
		return fmt.Errorf("failed to encode saved object %s/%s: %w", objectType, id, err)
	}

	created, err := c.client.SetNX(ctx, key(objectType, id), raw, 0).Result()
	if err != nil {
		return err
	}

	if !created {
		return fmt.Errorf("%s/%s: %w", objectType, id, ErrAlreadyExists)
	}

	return nil
}

func (c *RedisClient) Delete(ctx context.Context, objectType, id string) error {
	deleted, err := c.client.Del(ctx, key(objectType, id)).Result()
	if err != nil {
		return err
	}

	if deleted == 0 {
		return fmt.Errorf("%s/%s: %w", objectType, id, ErrNotFound)
	}

	return nil
}
