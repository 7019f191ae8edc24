package model

import (
	"time"
)

// UserProfile 用户资料，按账户地址存储
type UserProfile struct {
	Address     string    `json:"address"`
	Username    string    `json:"username" binding:"required"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio,omitempty"`
	AvatarUrl   string    `json:"avatar_url,omitempty"`
	SocialLinks []string  `json:"social_links,omitempty"`
	Created     time.Time `json:"created"`

	// 统计信息
	CampaignsCreated uint64 `json:"campaigns_created"`
	TotalDonations   Amount `json:"total_donations"`
}
