package store

import "sync"

// UserLocker serializes turn processing per user ID.
// ストアのget/mutate/putサイクルはCAS保護されていないため、
// 同一ユーザーのターンを直列化して後勝ち上書きによる更新消失を防ぐ。
type UserLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocker creates a new UserLocker
func NewUserLocker() *UserLocker {
	return &UserLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the lock for a user ID, creating it on first use
func (l *UserLocker) Lock(userID string) {
	l.userMutex(userID).Lock()
}

// Unlock releases the lock for a user ID
func (l *UserLocker) Unlock(userID string) {
	l.userMutex(userID).Unlock()
}

func (l *UserLocker) userMutex(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if m, exists := l.locks[userID]; exists {
		return m
	}
	m := &sync.Mutex{}
	l.locks[userID] = m
	return m
}
