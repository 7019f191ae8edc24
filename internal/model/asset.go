package model

import (
	"time"
)

// AssetType 资源类型
type AssetType string

const (
	AssetTypeMainImage   AssetType = "main-image"
	AssetTypeFilterImage AssetType = "filter-image"
	AssetTypeOther       AssetType = "other"
)

// Asset 二进制资源，按所有者地址存储，内容不做任何解释
type Asset struct {
	Owner       string    `json:"owner"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	AssetType   AssetType `json:"asset_type"`
	Data        []byte    `json:"data"`
	Created     time.Time `json:"created"`
}
