// Package registry cung cấp registry generic, thread-safe, dùng để giữ các instance
// được khởi tạo một lần (ví dụ: các DashboardStore theo nhóm route).
package registry

import (
	"errors"
	"sort"
	"sync"
)

// ErrEmptyName trả về khi đăng ký với tên rỗng
var ErrEmptyName = errors.New("registry: name cannot be empty")

// Registry quản lý các item theo tên. Type parameter T là loại item.
//
// Example:
//
//	stores := NewRegistry[service.DashboardStore]()
//	stores.Register("setting", mongoStore)
//	if store, ok := stores.Get("setting"); ok { ... }
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo và trả về một registry mới
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item. Item cùng tên sẽ bị ghi đè.
// isNew = false khi ghi đè item cũ.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// Names trả về danh sách tên đã đăng ký (đã sắp xếp)
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
