package task

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/sambutracy/filterfund/internal/config"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/logger"
)

// Manager 定时任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	ledger    *ledger.Ledger
	config    *config.Config
}

// NewManager 创建任务管理器
func NewManager(l *ledger.Ledger, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		ledger:    l,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(l *ledger.Ledger, cfg *config.Config) *Manager {
	manager := NewManager(l, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.RegisterCampaignStatsJob()
}

// RegisterCampaignStatsJob 注册活动统计任务
func (m *Manager) RegisterCampaignStatsJob() {
	job := NewCampaignStatsJob(m.ledger, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
