package event

import (
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sambutracy/filterfund/internal/logger"
	"github.com/sambutracy/filterfund/internal/model"
)

// Event 账本产生的事件
type Event struct {
	Type       model.EventType
	CampaignId uint32
	Actor      string
	Amount     model.Amount
	At         time.Time
}

// Handler 事件处理函数
type Handler func(Event)

// Bus 事件总线，通过协程池异步派发事件。
// 派发不承载任何账本不变量，处理失败只记录日志。
type Bus struct {
	pool *ants.Pool

	mu       sync.RWMutex
	handlers []Handler
}

// NewBus 创建事件总线
func NewBus(poolSize int) (*Bus, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Bus{pool: pool}, nil
}

// Subscribe 注册事件处理函数
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish 异步派发事件到所有处理函数
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h := h
		if err := b.pool.Submit(func() { h(e) }); err != nil {
			logger.Error("Failed to submit event task: %v", err)
		}
	}
}

// Close 关闭协程池
func (b *Bus) Close() {
	b.pool.Release()
}
