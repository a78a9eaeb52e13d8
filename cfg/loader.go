package cfg

import (
	"sync"
)

var (
	loader     Loader
	loaderOnce sync.Once
)

type Loader interface {
	Load() (*Config, error)
}

// Reloadable là loader hỗ trợ hot-reload cấu hình, ví dụ để cập nhật
// tham số bố cục scene mà không cần khởi động lại server
type Reloadable interface {
	Loader
	RegisterConfigChangeCallback(callback func(*Config))
}

func NewLoader(l Loader) (Loader, error) {
	loaderOnce.Do(func() {
		loader = l
	})
	return loader, nil
}
