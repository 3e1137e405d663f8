package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opdss/report/contracts/locker"
	locks "github.com/opdss/report/locker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const delLua = `if redis.call("get",KEYS[1]) == ARGV[1] then return redis.call("del",KEYS[1]) end return 0`

var _ locker.Provider = (*LockerProvider)(nil)

// LockerProvider 按key创建redis锁，多实例部署时使用
type LockerProvider struct {
	client *redis.Client
	prefix string
	log    *zap.Logger
}

func NewLockerProvider(rdb *redis.Client, prefix string, log *zap.Logger) *LockerProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LockerProvider{client: rdb, prefix: prefix, log: log}
}

func (p *LockerProvider) NewLocker(key string) locker.Locker {
	l := NewLocker(p.prefix+key, p.client)
	l.log = p.log
	return l
}

var _ locker.Locker = (*Locker)(nil)

// Locker 基于redis实现的分布式锁
type Locker struct {
	client       *redis.Client
	unlockScript *redis.Script
	key          string
	token        string
	deadline     time.Time
	log          *zap.Logger
}

func NewLocker(key string, rdb *redis.Client) *Locker {
	return &Locker{
		client:       rdb,
		key:          key,
		token:        uuid.New().String(),
		unlockScript: redis.NewScript(delLua),
		log:          zap.NewNop(),
	}
}

// Lock 非阻塞锁
func (l *Locker) Lock(exp time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), exp)
	defer cancel()
	ok, err := l.client.SetNX(ctx, l.key, l.token, exp).Result()
	if err != nil {
		return locks.Error.Wrap(err)
	}
	if !ok {
		return locks.ErrFailure
	}
	l.deadline = time.Now().Add(exp)
	return nil
}

// TryLock 自旋锁
func (l *Locker) TryLock(wait time.Duration) (err error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	var ok bool
	for time.Since(start) < wait {
		// 超时时间与锁时间相同
		ok, err = l.client.SetNX(ctx, l.key, l.token, wait).Result()
		if err != nil {
			time.Sleep(time.Millisecond * 50)
			continue
		}
		if !ok {
			time.Sleep(time.Millisecond * 10)
			continue
		}
		l.deadline = time.Now().Add(wait)
		return nil
	}
	if err != nil {
		return locks.Error.Wrap(err)
	}
	return locks.ErrTimeout
}

// Unlock 只删除自己持有的锁，锁已过期时直接返回
func (l *Locker) Unlock() error {
	if l.deadline.IsZero() || time.Now().After(l.deadline) {
		l.deadline = time.Time{}
		return nil
	}
	ctx, cancel := context.WithDeadline(context.Background(), l.deadline)
	defer cancel()
	l.deadline = time.Time{}
	if err := l.unlockScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		l.log.Warn("redis unlock error", zap.String("key", l.key), zap.Error(err))
		return locks.Error.Wrap(err)
	}
	return nil
}
