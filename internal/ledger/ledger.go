package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sambutracy/filterfund/internal/chain"
	"github.com/sambutracy/filterfund/internal/event"
	"github.com/sambutracy/filterfund/internal/logger"
	"github.com/sambutracy/filterfund/internal/model"
	"github.com/sambutracy/filterfund/internal/store"
)

const campaignCountKey = "campaign_count"

// Ledger 众筹账本核心。持有活动表和活动计数器，
// 所有写操作在写锁内完成校验和落库，保证单写者语义。
type Ledger struct {
	mu sync.RWMutex

	campaigns store.Store[uint32, model.Campaign]
	counters  store.Store[string, uint32]
	transfer  chain.ValueTransfer
	bus       *event.Bus

	minTarget model.Amount
	minLead   time.Duration
	now       func() time.Time
}

// Option 账本可选配置
type Option func(*Ledger)

// WithEventBus 挂接事件总线
func WithEventBus(bus *event.Bus) Option {
	return func(l *Ledger) { l.bus = bus }
}

// WithClock 替换时钟，测试用
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New 创建账本
func New(
	campaigns store.Store[uint32, model.Campaign],
	counters store.Store[string, uint32],
	transfer chain.ValueTransfer,
	minTarget model.Amount,
	minLead time.Duration,
	opts ...Option,
) *Ledger {
	l := &Ledger{
		campaigns: campaigns,
		counters:  counters,
		transfer:  transfer,
		minTarget: minTarget,
		minLead:   minLead,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateCampaignInput 创建活动的入参
type CreateCampaignInput struct {
	Title       string
	Description string
	MainImage   string
	FilterImage string
	Category    string
	Target      model.Amount
	Deadline    time.Time
	Filter      model.Filter
	CreatorName string
}

// CreateCampaign 创建众筹活动，返回新活动的编号。
// 校验失败时不产生任何副作用（计数器不变、不落库、不截断入参）。
func (l *Ledger) CreateCampaign(ctx context.Context, caller string, in CreateCampaignInput) (uint32, error) {
	if caller == "" {
		return 0, ErrUnauthorized
	}

	now := l.now()
	if !in.Deadline.After(now.Add(l.minLead)) {
		return 0, ErrDeadlineTooSoon
	}
	if in.Target.Cmp(l.minTarget) < 0 {
		return 0, ErrInvalidTarget
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id, _, err := l.counters.Get(campaignCountKey)
	if err != nil {
		return 0, fmt.Errorf("读取活动计数器失败: %w", err)
	}

	campaign := model.Campaign{
		Id:              id,
		Created:         now,
		Title:           in.Title,
		Description:     in.Description,
		MainImage:       in.MainImage,
		FilterImage:     in.FilterImage,
		Category:        in.Category,
		Target:          in.Target,
		AmountCollected: model.NewAmount(0),
		Deadline:        in.Deadline,
		IsActive:        true,
		Creator:         caller,
		CreatorName:     in.CreatorName,
		Filter:          in.Filter,
	}

	if err := l.campaigns.Insert(id, campaign); err != nil {
		return 0, fmt.Errorf("写入活动失败: %w", err)
	}

	// 计数器饱和递增，编号永不复用
	next := id
	if id < math.MaxUint32 {
		next = id + 1
	}
	if err := l.counters.Insert(campaignCountKey, next); err != nil {
		// 保持无部分效果：计数器推进失败时撤掉已写入的活动
		if rmErr := l.campaigns.Remove(id); rmErr != nil {
			logger.Error("Failed to roll back campaign %d: %v", id, rmErr)
		}
		return 0, fmt.Errorf("推进活动计数器失败: %w", err)
	}

	l.publish(event.Event{
		Type:       model.EventCampaignCreated,
		CampaignId: id,
		Actor:      caller,
		At:         now,
	})
	return id, nil
}

// Contribute 向活动捐赠。转账与记账在写锁内作为一个逻辑原子步骤：
// 转账失败时活动记录保持原样，转账成功后金额必定入账。
func (l *Ledger) Contribute(ctx context.Context, caller string, id uint32, amount model.Amount, message string, anonymous bool) error {
	if caller == "" {
		return ErrUnauthorized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	campaign, ok, err := l.campaigns.Get(id)
	if err != nil {
		return fmt.Errorf("读取活动失败: %w", err)
	}
	if !ok {
		return ErrCampaignNotFound
	}

	now := l.now()
	if !campaign.AcceptsContributions(now) {
		return ErrCampaignExpired
	}

	if err := l.transfer.Transfer(ctx, caller, campaign.Creator, amount); err != nil {
		if errors.Is(err, chain.ErrInsufficientBalance) {
			return ErrNotEnoughBalance
		}
		logger.Error("Transfer failed for campaign %d: %v", id, err)
		return ErrTransferFailed
	}

	campaign.AmountCollected = campaign.AmountCollected.Add(amount)
	campaign.Donations = append(campaign.Donations, model.Donation{
		Donor:     caller,
		Amount:    amount,
		Message:   message,
		Anonymous: anonymous,
		Timestamp: now,
	})

	if err := l.campaigns.Insert(id, campaign); err != nil {
		return fmt.Errorf("写入活动失败: %w", err)
	}

	l.publish(event.Event{
		Type:       model.EventCampaignFunded,
		CampaignId: id,
		Actor:      caller,
		Amount:     amount,
		At:         now,
	})
	return nil
}

// UpdateCampaignStatus 启停活动，仅创建者可操作
func (l *Ledger) UpdateCampaignStatus(caller string, id uint32, active bool) error {
	if caller == "" {
		return ErrUnauthorized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	campaign, ok, err := l.campaigns.Get(id)
	if err != nil {
		return fmt.Errorf("读取活动失败: %w", err)
	}
	if !ok {
		return ErrCampaignNotFound
	}
	if campaign.Creator != caller {
		return ErrUnauthorized
	}

	campaign.IsActive = active
	if err := l.campaigns.Insert(id, campaign); err != nil {
		return fmt.Errorf("写入活动失败: %w", err)
	}

	l.publish(event.Event{
		Type:       model.EventCampaignStatusChanged,
		CampaignId: id,
		Actor:      caller,
		At:         l.now(),
	})
	return nil
}

// GetCampaign 读取单个活动
func (l *Ledger) GetCampaign(id uint32) (model.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	campaign, ok, err := l.campaigns.Get(id)
	if err != nil {
		return model.Campaign{}, fmt.Errorf("读取活动失败: %w", err)
	}
	if !ok {
		return model.Campaign{}, ErrCampaignNotFound
	}
	return campaign, nil
}

// ListCampaigns 按编号升序返回所有活动。
// 按计数器遍历并跳过缺失编号，不假设编号稠密。
func (l *Ledger) ListCampaigns() ([]model.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listLocked()
}

func (l *Ledger) listLocked() ([]model.Campaign, error) {
	count, _, err := l.counters.Get(campaignCountKey)
	if err != nil {
		return nil, fmt.Errorf("读取活动计数器失败: %w", err)
	}

	campaigns := make([]model.Campaign, 0, count)
	for id := uint32(0); id < count; id++ {
		campaign, ok, err := l.campaigns.Get(id)
		if err != nil {
			return nil, fmt.Errorf("读取活动失败: %w", err)
		}
		if !ok {
			continue
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, nil
}

// ActiveCampaigns 返回仍可接受捐赠的活动
func (l *Ledger) ActiveCampaigns() ([]model.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all, err := l.listLocked()
	if err != nil {
		return nil, err
	}

	now := l.now()
	active := make([]model.Campaign, 0, len(all))
	for _, c := range all {
		if c.AcceptsContributions(now) {
			active = append(active, c)
		}
	}
	return active, nil
}

// CampaignsByCategory 按类别筛选活动
func (l *Ledger) CampaignsByCategory(category string) ([]model.Campaign, error) {
	return l.filter(func(c model.Campaign) bool { return c.Category == category })
}

// CampaignsByCreator 返回指定创建者的活动
func (l *Ledger) CampaignsByCreator(creator string) ([]model.Campaign, error) {
	return l.filter(func(c model.Campaign) bool { return c.Creator == creator })
}

func (l *Ledger) filter(keep func(model.Campaign) bool) ([]model.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all, err := l.listLocked()
	if err != nil {
		return nil, err
	}

	matched := make([]model.Campaign, 0, len(all))
	for _, c := range all {
		if keep(c) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// RecentCampaigns 返回最新创建的 n 个活动
func (l *Ledger) RecentCampaigns(n int) ([]model.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all, err := l.listLocked()
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Id > all[j].Id })
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all, nil
}

// TopCampaigns 按已筹金额降序返回前 n 个活动
func (l *Ledger) TopCampaigns(n int) ([]model.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all, err := l.listLocked()
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		cmp := all[i].AmountCollected.Cmp(all[j].AmountCollected)
		if cmp != 0 {
			return cmp > 0
		}
		return all[i].Id < all[j].Id
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all, nil
}

// CampaignCount 返回活动计数器当前值
func (l *Ledger) CampaignCount() (uint32, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count, _, err := l.counters.Get(campaignCountKey)
	if err != nil {
		return 0, fmt.Errorf("读取活动计数器失败: %w", err)
	}
	return count, nil
}

// CampaignDonors 返回活动的捐赠者地址（匿名捐赠不计入）
func (l *Ledger) CampaignDonors(id uint32) ([]string, error) {
	campaign, err := l.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	return campaign.Donors(), nil
}

func (l *Ledger) publish(e event.Event) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}
