// Package scanguard throttles and serializes badge scans per employee.
package scanguard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
)

const (
	lockPrefix     = "dtr:scan:lock:"
	cooldownPrefix = "dtr:scan:cooldown:"
)

// RedisGuard shares cooldowns and locks between API instances.
type RedisGuard struct {
	rdb      *redis.Client
	locker   *redislock.Client
	cooldown time.Duration
	lockTTL  time.Duration
}

func NewRedisGuard(rdb *redis.Client, cooldown, lockTTL time.Duration) *RedisGuard {
	return &RedisGuard{
		rdb:      rdb,
		locker:   redislock.New(rdb),
		cooldown: cooldown,
		lockTTL:  lockTTL,
	}
}

func (g *RedisGuard) Lock(ctx context.Context, employeeID string) (func(context.Context) error, error) {
	lock, err := g.locker.Obtain(ctx, lockPrefix+employeeID, g.lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, attendance.ErrScanInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("obtain scan lock: %w", err)
	}

	release := func(ctx context.Context) error {
		// the lock may have expired during a slow scan
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release scan lock: %w", err)
		}
		return nil
	}
	return release, nil
}

func (g *RedisGuard) InCooldown(ctx context.Context, employeeID string) (bool, error) {
	n, err := g.rdb.Exists(ctx, cooldownPrefix+employeeID).Result()
	if err != nil {
		return false, fmt.Errorf("check scan cooldown: %w", err)
	}
	return n > 0, nil
}

func (g *RedisGuard) MarkScanned(ctx context.Context, employeeID string) error {
	if g.cooldown <= 0 {
		return nil
	}
	if err := g.rdb.Set(ctx, cooldownPrefix+employeeID, time.Now().Unix(), g.cooldown).Err(); err != nil {
		return fmt.Errorf("set scan cooldown: %w", err)
	}
	return nil
}
