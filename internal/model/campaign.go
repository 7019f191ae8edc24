package model

import (
	"time"
)

// Filter AR滤镜描述
type Filter struct {
	Platform     string `json:"platform"`
	FilterType   string `json:"filter_type"`
	Instructions string `json:"instructions"`
	FilterUrl    string `json:"filter_url"`
}

// Donation 单笔捐赠记录
type Donation struct {
	Donor     string    `json:"donor"`
	Amount    Amount    `json:"amount"`
	Message   string    `json:"message,omitempty"`
	Anonymous bool      `json:"anonymous"`
	Timestamp time.Time `json:"timestamp"`
}

// Campaign 众筹活动模型
type Campaign struct {
	Id      uint32    `json:"id"`
	Created time.Time `json:"created"`

	// 基本信息
	Title       string `json:"title"`
	Description string `json:"description"`
	MainImage   string `json:"main_image"`
	FilterImage string `json:"filter_image"`
	Category    string `json:"category"`

	// 众筹信息
	Target          Amount    `json:"target"`
	AmountCollected Amount    `json:"amount_collected"`
	Deadline        time.Time `json:"deadline"`
	IsActive        bool      `json:"is_active"`

	// 创建者信息
	Creator     string `json:"creator"`
	CreatorName string `json:"creator_name"`

	// 滤镜与捐赠
	Filter    Filter     `json:"filter"`
	Donations []Donation `json:"donations,omitempty"`
}

// Expired 活动在给定时刻是否已过截止时间
func (c Campaign) Expired(now time.Time) bool {
	return now.After(c.Deadline)
}

// AcceptsContributions 活动在给定时刻是否可接受捐赠
func (c Campaign) AcceptsContributions(now time.Time) bool {
	return c.IsActive && !c.Expired(now)
}

// Donors 返回去重后的捐赠者地址（匿名捐赠不计入）
func (c Campaign) Donors() []string {
	seen := make(map[string]struct{}, len(c.Donations))
	donors := make([]string, 0, len(c.Donations))
	for _, d := range c.Donations {
		if d.Anonymous {
			continue
		}
		if _, ok := seen[d.Donor]; ok {
			continue
		}
		seen[d.Donor] = struct{}{}
		donors = append(donors, d.Donor)
	}
	return donors
}
