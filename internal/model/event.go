package model

import (
	"time"
)

// EventType 账本事件类型
type EventType string

const (
	EventCampaignCreated       EventType = "CampaignCreated"
	EventCampaignFunded        EventType = "CampaignFunded"
	EventCampaignStatusChanged EventType = "CampaignStatusChanged"
)

// EventRecord 账本事件记录
type EventRecord struct {
	Id         uint64    `json:"id"`
	Type       EventType `json:"type"`
	CampaignId uint32    `json:"campaign_id"`
	Actor      string    `json:"actor"`
	Amount     Amount    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
