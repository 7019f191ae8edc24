package store

import (
	"errors"
	"sync"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("记录不存在")

// Store 按键存取序列化记录的通用存储抽象。
// Insert 为插入或覆盖语义，存在性约束由上层业务保证。
type Store[K comparable, V any] interface {
	// Get 读取键对应的记录，第二个返回值表示键是否存在
	Get(key K) (V, bool, error)
	// Insert 写入记录，键已存在时覆盖
	Insert(key K, value V) error
	// Remove 删除记录，键不存在时返回 ErrNotFound
	Remove(key K) error
}

// Memory 内存实现，读写并发安全
type Memory[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewMemory 创建内存存储
func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{m: make(map[K]V)}
}

func (s *Memory[K, V]) Get(key K) (V, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory[K, V]) Insert(key K, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = value
	return nil
}

func (s *Memory[K, V]) Remove(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[key]; !ok {
		return ErrNotFound
	}
	delete(s.m, key)
	return nil
}
