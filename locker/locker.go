package locker

import (
	"sync"
	"time"

	"github.com/opdss/report/contracts/locker"
	"github.com/zeebo/errs"
)

var Error = errs.Class("locker")

// ErrFailure 锁已被占用
var ErrFailure = Error.New("get lock failure")

// ErrTimeout 自旋等待超时
var ErrTimeout = Error.New("try lock time out")

var _ locker.Provider = (*Memory)(nil)

// Memory 进程内的锁，单实例部署时使用
type Memory struct {
	mu    sync.Mutex
	seq   uint64
	held  map[string]holder
	clock func() time.Time
}

type holder struct {
	token    uint64
	deadline time.Time //零值表示不过期
}

func NewMemory() *Memory {
	return &Memory{
		held:  make(map[string]holder),
		clock: time.Now,
	}
}

func (m *Memory) NewLocker(key string) locker.Locker {
	return &memoryLocker{m: m, key: key}
}

func (m *Memory) acquire(key string, exp time.Duration) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock()
	if h, ok := m.held[key]; ok && (h.deadline.IsZero() || now.Before(h.deadline)) {
		return 0, false
	}
	m.seq++
	h := holder{token: m.seq}
	if exp > 0 {
		h.deadline = now.Add(exp)
	}
	m.held[key] = h
	return h.token, true
}

func (m *Memory) release(key string, token uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.held[key]; ok && h.token == token {
		delete(m.held, key)
	}
}

var _ locker.Locker = (*memoryLocker)(nil)

type memoryLocker struct {
	m     *Memory
	key   string
	token uint64
}

// Lock 非阻塞锁，exp<=0时不过期
func (l *memoryLocker) Lock(exp time.Duration) error {
	token, ok := l.m.acquire(l.key, exp)
	if !ok {
		return ErrFailure
	}
	l.token = token
	return nil
}

// TryLock 自旋锁，等待时间与锁时间相同
func (l *memoryLocker) TryLock(wait time.Duration) error {
	start := time.Now()
	for {
		if err := l.Lock(wait); err == nil {
			return nil
		}
		if time.Since(start) >= wait {
			return ErrTimeout
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (l *memoryLocker) Unlock() error {
	if l.token == 0 {
		return nil
	}
	l.m.release(l.key, l.token)
	l.token = 0
	return nil
}
