// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tienda/internal/platform/constants"
)

// RedisResetLedger implements [ResetLedger] using Redis, so a token consumed
// on one API instance is rejected by every other.
type RedisResetLedger struct {
	client *redis.Client
}

// NewRedisResetLedger creates a new Redis-backed ResetLedger.
func NewRedisResetLedger(client *redis.Client) *RedisResetLedger {
	return &RedisResetLedger{client: client}
}

/*
Consume claims the token ID with SETNX. The key expires with the token,
after which the signature check rejects it anyway.

Parameters:
  - context: context.Context
  - tokenID: string (jti of the reset token)
  - ttl: time.Duration (remaining token lifetime)

Returns:
  - bool: false if the key already existed
  - error: Connectivity errors
*/
func (ledger *RedisResetLedger) Consume(context context.Context, tokenID string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixResetToken + tokenID

	claimed, err := ledger.client.SetNX(context, key, time.Now().UTC().Format(time.RFC3339), max(ttl, time.Second)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_reset_ledger_consume_failed: %w", err)
	}

	return claimed, nil
}

// Release deletes the claim on tokenID.
func (ledger *RedisResetLedger) Release(context context.Context, tokenID string) error {
	if err := ledger.client.Del(context, constants.RedisPrefixResetToken+tokenID).Err(); err != nil {
		return fmt.Errorf("redis_reset_ledger_release_failed: %w", err)
	}
	return nil
}
