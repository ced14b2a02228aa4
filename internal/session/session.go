// Package session 描述一次登录会话以及会话变化的发布/订阅。
//
// 生命周期：页面加载时由中间件从 cookie 初始化，OAuth 回调成功后发布 SignedIn，
// 退出登录时发布 SignedOut。订阅者（例如新用户引导）各自消费事件。
package session

import (
	"caseforge_backend/internal/model"
	"context"
	"sync"
	"time"
)

type Session struct {
	UserID    string             `json:"id"`
	Email     string             `json:"email"`
	Metadata  model.UserMetadata `json:"user_metadata"`
	IsAdmin   bool               `json:"is_admin"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// DisplayName 元数据里没有姓名时使用默认称呼
func (s *Session) DisplayName() string {
	if s.Metadata.FullName != "" {
		return s.Metadata.FullName
	}
	return "Case Solver"
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

type EventType string

const (
	SignedIn  EventType = "signed_in"
	SignedOut EventType = "signed_out"
)

type Event struct {
	Type    EventType
	Session Session
}

// Hub 会话事件的扇出中心。订阅者通道带缓冲，消费过慢时丢弃事件而不是阻塞发布方。
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	closed      bool
	buffer      int
	onDrop      func(Event)
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// OnDrop 设置丢弃事件时的回调，用于记录日志
func (h *Hub) OnDrop(fn func(Event)) {
	h.mu.Lock()
	h.onDrop = fn
	h.mu.Unlock()
}

// Subscribe 返回事件通道和取消订阅函数。Hub 关闭后通道会被关闭。
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish 不阻塞，返回成功投递的订阅者数量
func (h *Hub) Publish(e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0
	}

	delivered := 0
	for ch := range h.subscribers {
		select {
		case ch <- e:
			delivered++
		default:
			if h.onDrop != nil {
				h.onDrop(e)
			}
		}
	}
	return delivered
}

// Close 关闭所有订阅通道，之后的 Publish 为空操作
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, ch)
	}
}
