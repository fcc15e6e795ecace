// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package meta

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// Hasher abstracts the minimal hash surface we need from a Redis client.
// Implementations may wrap github.com/redis/go-redis/v9 or any equivalent.
// HGet must return ("", nil) for missing fields; "unset" is a value here,
// not an error.
type Hasher interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key, field, value string) error
}

// GoRedisHasher is a production Redis client wrapper implementing Hasher.
// Use NewGoRedisHasher to construct it with an address like "127.0.0.1:6379".
type GoRedisHasher struct{ c *redis.Client }

func NewGoRedisHasher(addr string) *GoRedisHasher {
	opt := &redis.Options{Addr: addr}
	return &GoRedisHasher{c: redis.NewClient(opt)}
}

func (g *GoRedisHasher) HGet(ctx context.Context, key, field string) (string, error) {
	v, err := g.c.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (g *GoRedisHasher) HSet(ctx context.Context, key, field, value string) error {
	return g.c.HSet(ctx, key, field, value).Err()
}

// RedisTable stores the legacy global metadata table as one Redis hash per
// entity, keyed by the entity's numeric id.
type RedisTable struct {
	client Hasher
}

// NewRedisTable returns a Table over the given Redis client.
func NewRedisTable(client Hasher) *RedisTable {
	return &RedisTable{client: client}
}

// RedisMetaKey is the hash key holding all attributes of one entity.
func RedisMetaKey(id int64) string { return fmt.Sprintf("meta:%d", id) }

func (t *RedisTable) Get(ctx context.Context, id int64, key string) (string, error) {
	v, err := t.client.HGet(ctx, RedisMetaKey(id), key)
	if err != nil {
		return "", fmt.Errorf("redis hget id=%d key=%s: %w", id, key, err)
	}
	return v, nil
}

func (t *RedisTable) Set(ctx context.Context, id int64, key, value string) error {
	if err := t.client.HSet(ctx, RedisMetaKey(id), key, value); err != nil {
		return fmt.Errorf("redis hset id=%d key=%s: %w", id, key, err)
	}
	return nil
}
