package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sambutracy/filterfund/internal/config"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/logger"
	"github.com/sambutracy/filterfund/internal/model"
)

// CampaignStatsJob 活动统计任务。只读快照落日志，
// 不改动任何活动状态——过期判定只在捐赠时进行。
type CampaignStatsJob struct {
	ledger *ledger.Ledger
	config *config.Config
}

// NewCampaignStatsJob 创建活动统计任务
func NewCampaignStatsJob(l *ledger.Ledger, cfg *config.Config) *CampaignStatsJob {
	return &CampaignStatsJob{
		ledger: l,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatsJob) GetName() string {
	return "campaign_stats_reporter"
}

// GetSchedule 获取调度配置
func (j *CampaignStatsJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatsJob) Execute() {
	campaigns, err := j.ledger.ListCampaigns()
	if err != nil {
		logger.Error("Failed to fetch campaigns for stats: %v", err)
		return
	}

	now := time.Now()
	active := 0
	expired := 0
	totalRaised := model.NewAmount(0)
	for _, c := range campaigns {
		if c.AcceptsContributions(now) {
			active++
		} else if c.Expired(now) {
			expired++
		}
		totalRaised = totalRaised.Add(c.AmountCollected)
	}

	logger.Info("Campaign stats: total=%d active=%d expired=%d raised=%s",
		len(campaigns), active, expired, totalRaised.String())
}
