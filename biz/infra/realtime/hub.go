package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
)

var ErrUnknownHandle = errors.New("realtime: unknown handle")

// Conn 一条客户端连接, 实现需要保证并发写安全
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Handle 在线用户的连接句柄
type Handle interface {
	UserId() string
}

// PresenceRegistry 查找在线用户并向其推送, 推送是尽力而为的, 不排队不重试
type PresenceRegistry interface {
	Lookup(ctx context.Context, uid string) (Handle, bool)
	Publish(ctx context.Context, h Handle, e *Event) error
}

// Presence 连接的注册与注销, 由websocket入口使用
type Presence interface {
	PresenceRegistry
	Attach(ctx context.Context, uid string, conn Conn) Handle
	Detach(ctx context.Context, h Handle) bool // 返回是否真正移除, 已被新连接替换时为false
	Touch(ctx context.Context, h Handle)       // 收到客户端数据时刷新在线状态
	Run(ctx context.Context) error             // 阻塞直到ctx结束
}

type session struct {
	uid  string
	conn Conn
}

func (s *session) UserId() string { return s.uid }

var _ Presence = (*Hub)(nil)

// Hub 本实例上的连接表, 每个用户只保留最新的一条连接
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

func (h *Hub) Attach(ctx context.Context, uid string, conn Conn) Handle {
	s := &session{uid: uid, conn: conn}
	h.mu.Lock()
	old := h.sessions[uid]
	h.sessions[uid] = s
	h.mu.Unlock()
	if old != nil {
		logs.CtxInfof(ctx, "[realtime] [hub] replace session of %s", uid)
		if err := old.conn.Close(); err != nil {
			logs.CtxWarnf(ctx, "[realtime] [hub] close replaced session err:%s", errorx.ErrorWithoutStack(err))
		}
	}
	return s
}

func (h *Hub) Detach(_ context.Context, hd Handle) bool {
	s, ok := hd.(*session)
	if !ok {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[s.uid] != s {
		return false
	}
	delete(h.sessions, s.uid)
	return true
}

func (h *Hub) Lookup(_ context.Context, uid string) (Handle, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[uid]
	if !ok {
		return nil, false
	}
	return s, true
}

func (h *Hub) Publish(_ context.Context, hd Handle, e *Event) error {
	s, ok := hd.(*session)
	if !ok {
		return ErrUnknownHandle
	}
	return s.conn.WriteJSON(e)
}

func (h *Hub) Touch(context.Context, Handle) {}

func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Online 当前实例上的在线人数
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
