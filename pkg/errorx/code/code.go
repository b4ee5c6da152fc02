package code

import "sync"

// Definition 一个已注册的错误码
type Definition struct {
	Code              int32
	Message           string // 消息模板, 形如 "用户被封禁至 {time}"
	IsAffectStability bool   // 是否影响服务稳定性, 影响稳定性的错误需要告警
}

type RegisterOptionFn func(*Definition)

// WithAffectStability 标记错误码是否影响稳定性
func WithAffectStability(affect bool) RegisterOptionFn {
	return func(d *Definition) {
		d.IsAffectStability = affect
	}
}

var (
	mu          sync.RWMutex
	definitions = make(map[int32]*Definition)
)

// Register 注册错误码, 通常在errno包的init中调用, 重复注册会覆盖
func Register(code int32, msg string, opts ...RegisterOptionFn) {
	d := &Definition{Code: code, Message: msg}
	for _, opt := range opts {
		opt(d)
	}
	mu.Lock()
	definitions[code] = d
	mu.Unlock()
}

// Get 获取错误码定义
func Get(code int32) (*Definition, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := definitions[code]
	return d, ok
}
