package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "worktime_manager:lock:"

// KeyLock: 基于 redis SETNX 的按 key 互斥锁，
// 用于保证批量操作对同一个员工的写入不会交错
type KeyLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *KeyLock {
	return &KeyLock{rdb: rdb, ttl: ttl}
}

func (l *KeyLock) Acquire(ctx context.Context, key string) (bool, error) {
	return l.rdb.SetNX(ctx, keyPrefix+key, 1, l.ttl).Result()
}

func (l *KeyLock) Release(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, keyPrefix+key).Err()
}
