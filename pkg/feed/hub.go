// Package feed 把 watch 轮询得到的读数推送给 HTTP 与 WebSocket 客户端
package feed

import (
	"sync"
	"time"

	"github.com/zoeyai/djwatch/pkg/radiodj"
)

// Update 一次轮询结果
type Update struct {
	Time    time.Time           `json:"time"`
	Alive   bool                `json:"alive"`
	Reading *radiodj.NowPlaying `json:"reading,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// subscriberBuffer 订阅通道缓冲，满时丢弃更新
const subscriberBuffer = 8

// Hub 保存最新读数并分发给订阅者
type Hub struct {
	mu     sync.RWMutex
	latest *Update
	subs   map[chan Update]struct{}
	closed bool
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Update]struct{})}
}

// Publish 记录并分发一次更新，不阻塞：订阅者处理不过来时丢弃
func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.latest = &u
	for ch := range h.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Latest 最新一次更新
func (h *Hub) Latest() (Update, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.latest == nil {
		return Update{}, false
	}
	return *h.latest, true
}

// Subscribe 订阅更新，Hub 关闭后通道随之关闭
func (h *Hub) Subscribe() chan Update {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Update, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe 取消订阅
func (h *Hub) Unsubscribe(ch chan Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// Subscribers 当前订阅者数量
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close 关闭全部订阅
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
