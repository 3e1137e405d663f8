package locker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLock(t *testing.T) {
	m := NewMemory()
	a := m.NewLocker("export:word")
	b := m.NewLocker("export:word")
	other := m.NewLocker("export:print")

	require.NoError(t, a.Lock(time.Minute))
	assert.ErrorIs(t, b.Lock(time.Minute), ErrFailure)
	assert.NoError(t, other.Lock(time.Minute))

	// 非持有者解锁不影响
	require.NoError(t, b.Unlock())
	assert.ErrorIs(t, b.Lock(time.Minute), ErrFailure)

	require.NoError(t, a.Unlock())
	assert.NoError(t, b.Lock(time.Minute))
	require.NoError(t, b.Unlock())
	require.NoError(t, other.Unlock())
}

func TestMemoryLockExpires(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	m.clock = func() time.Time { return now }

	a := m.NewLocker("k")
	require.NoError(t, a.Lock(time.Second))
	assert.ErrorIs(t, m.NewLocker("k").Lock(time.Second), ErrFailure)

	now = now.Add(2 * time.Second)
	b := m.NewLocker("k")
	require.NoError(t, b.Lock(time.Second))

	// 过期的持有者不能释放新的锁
	require.NoError(t, a.Unlock())
	assert.ErrorIs(t, m.NewLocker("k").Lock(time.Second), ErrFailure)
}

func TestMemoryLockNoExpiry(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.NewLocker("k").Lock(0))
	assert.ErrorIs(t, m.NewLocker("k").Lock(0), ErrFailure)
}

func TestMemoryTryLock(t *testing.T) {
	m := NewMemory()
	a := m.NewLocker("k")
	require.NoError(t, a.Lock(time.Minute))

	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(30 * time.Millisecond)
		_ = a.Unlock()
	}()
	b := m.NewLocker("k")
	require.NoError(t, b.TryLock(time.Second))
	require.NoError(t, b.Unlock())
	<-done

	require.NoError(t, a.Lock(time.Minute))
	assert.ErrorIs(t, m.NewLocker("k").TryLock(50*time.Millisecond), ErrTimeout)
}
