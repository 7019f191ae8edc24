package event

import (
	"sync"

	"github.com/sambutracy/filterfund/internal/logger"
	"github.com/sambutracy/filterfund/internal/model"
	"github.com/sambutracy/filterfund/internal/store"
)

const eventCountKey = "event_count"

// Recorder 把事件持久化为连续编号的记录
type Recorder struct {
	mu       sync.Mutex
	events   store.Store[uint64, model.EventRecord]
	counters store.Store[string, uint64]
}

// NewRecorder 创建事件记录器
func NewRecorder(events store.Store[uint64, model.EventRecord], counters store.Store[string, uint64]) *Recorder {
	return &Recorder{events: events, counters: counters}
}

// Record 持久化一条事件，作为 Handler 挂到总线上
func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, _, err := r.counters.Get(eventCountKey)
	if err != nil {
		logger.Error("Failed to read event counter: %v", err)
		return
	}

	rec := model.EventRecord{
		Id:         next,
		Type:       e.Type,
		CampaignId: e.CampaignId,
		Actor:      e.Actor,
		Amount:     e.Amount,
		CreatedAt:  e.At,
	}
	if err := r.events.Insert(next, rec); err != nil {
		logger.Error("Failed to persist event %d: %v", next, err)
		return
	}
	if err := r.counters.Insert(eventCountKey, next+1); err != nil {
		logger.Error("Failed to advance event counter: %v", err)
	}
}
