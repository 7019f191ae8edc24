package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/auth"
	"github.com/sambutracy/filterfund/internal/chain"
	"github.com/sambutracy/filterfund/internal/config"
	"github.com/sambutracy/filterfund/internal/event"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/logger"
	"github.com/sambutracy/filterfund/internal/logic"
	"github.com/sambutracy/filterfund/internal/model"
	"github.com/sambutracy/filterfund/internal/router"
	"github.com/sambutracy/filterfund/internal/store"
	"github.com/sambutracy/filterfund/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := store.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化链上客户端
	chainClient, err := chain.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize chain client: %v", err)
	}
	defer chainClient.Close()

	// 各实体类别的存储
	campaigns := store.NewGorm[uint32, model.Campaign](db, "campaign", store.Uint32Key)
	campaignCounters := store.NewGorm[string, uint32](db, "campaign_counter", store.StringKey)
	profiles := store.NewGorm[string, model.UserProfile](db, "profile", store.StringKey)
	assets := store.NewGorm[string, model.Asset](db, "asset", store.StringKey)
	events := store.NewGorm[uint64, model.EventRecord](db, "event", store.Uint64Key)
	eventCounters := store.NewGorm[string, uint64](db, "event_counter", store.StringKey)

	// 事件总线与记录器
	bus, err := event.NewBus(8)
	if err != nil {
		logger.Fatal("Failed to create event bus: %v", err)
	}
	defer bus.Close()
	bus.Subscribe(event.NewRecorder(events, eventCounters).Record)

	// 活动规则
	minTarget, err := model.ParseAmount(cfg.Campaign.MinTarget)
	if err != nil {
		logger.Fatal("Invalid campaign.min_target: %v", err)
	}

	// 账本核心
	l := ledger.New(campaigns, campaignCounters, chainClient, minTarget, cfg.Campaign.LeadTime(),
		ledger.WithEventBus(bus))

	// 周边实体服务
	profileLogic := logic.NewProfileLogic(profiles)
	assetLogic := logic.NewAssetLogic(assets)

	// 访问门
	gate := auth.NewGate(cfg.Auth)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(l, profileLogic, assetLogic, gate)

	// 启动定时任务
	manager := task.Start(l, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
