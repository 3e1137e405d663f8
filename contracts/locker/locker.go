package locker

import "time"

// Locker 导出互斥锁，过期后自动释放
type Locker interface {
	// Lock 立即加锁，被占用时返回失败
	Lock(ttl time.Duration) error
	// TryLock 在wait时间内重试加锁
	TryLock(wait time.Duration) error
	// Unlock 只释放自己持有的锁
	Unlock() error
}

// Provider 按key创建锁，相同key的锁互斥
type Provider interface {
	NewLocker(key string) Locker
}
