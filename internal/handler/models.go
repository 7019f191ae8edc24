package handler

import (
	"time"

	"github.com/sambutracy/filterfund/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 活动相关请求模型

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	MainImage   string       `json:"main_image"`
	FilterImage string       `json:"filter_image"`
	Category    string       `json:"category"`
	Target      string       `json:"target" binding:"required"`
	Deadline    time.Time    `json:"deadline" binding:"required"`
	Filter      model.Filter `json:"filter"`
	CreatorName string       `json:"creator_name"`
}

// ContributeRequest 捐赠请求
type ContributeRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Message   string `json:"message"`
	Anonymous bool   `json:"anonymous"`
}

// UpdateStatusRequest 活动启停请求
type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// TokenRequest 令牌签发请求
type TokenRequest struct {
	Address string `json:"address" binding:"required"`
}

// UpdateStatsRequest 用户统计更新请求
type UpdateStatsRequest struct {
	CampaignsCreated uint64 `json:"campaigns_created"`
	Donated          string `json:"donated"`
}

// 活动相关响应模型

// CreateCampaignResponse 创建活动响应
type CreateCampaignResponse struct {
	CampaignId uint32 `json:"campaign_id"`
}

// GetCampaignsResponse 活动列表响应
type GetCampaignsResponse struct {
	Campaigns []model.Campaign `json:"campaigns"`
}

// GetCampaignResponse 活动详情响应
type GetCampaignResponse struct {
	Campaign model.Campaign `json:"campaign"`
}

// CampaignCountResponse 活动计数响应
type CampaignCountResponse struct {
	Count uint32 `json:"count"`
}

// CampaignDonorsResponse 活动捐赠者响应
type CampaignDonorsResponse struct {
	Donors []string `json:"donors"`
}

// TokenResponse 令牌签发响应
type TokenResponse struct {
	Token string `json:"token"`
}
