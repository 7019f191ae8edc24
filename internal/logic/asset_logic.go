package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/sambutracy/filterfund/internal/model"
	"github.com/sambutracy/filterfund/internal/store"
)

// AssetLogic 二进制资源业务逻辑，每个账户存一份不透明内容
type AssetLogic struct {
	assets store.Store[string, model.Asset]
}

// NewAssetLogic 创建资源业务逻辑
func NewAssetLogic(assets store.Store[string, model.Asset]) *AssetLogic {
	return &AssetLogic{assets: assets}
}

// AssetInput 资源入参
type AssetInput struct {
	Filename    string          `json:"filename" binding:"required"`
	ContentType string          `json:"content_type"`
	AssetType   model.AssetType `json:"asset_type"`
	Data        []byte          `json:"data" binding:"required"`
}

// StoreAsset 存入资源，所有者已有资源时失败
func (a *AssetLogic) StoreAsset(owner string, in AssetInput) error {
	_, ok, err := a.assets.Get(owner)
	if err != nil {
		return fmt.Errorf("读取资源失败: %w", err)
	}
	if ok {
		return ErrAlreadyExists
	}

	assetType := in.AssetType
	if assetType == "" {
		assetType = model.AssetTypeOther
	}

	asset := model.Asset{
		Owner:       owner,
		Filename:    in.Filename,
		ContentType: in.ContentType,
		AssetType:   assetType,
		Data:        in.Data,
		Created:     time.Now(),
	}
	return a.assets.Insert(owner, asset)
}

// GetAsset 读取资源
func (a *AssetLogic) GetAsset(owner string) (model.Asset, error) {
	asset, ok, err := a.assets.Get(owner)
	if err != nil {
		return model.Asset{}, fmt.Errorf("读取资源失败: %w", err)
	}
	if !ok {
		return model.Asset{}, ErrNotFound
	}
	return asset, nil
}

// DeleteAsset 删除资源，不存在时失败
func (a *AssetLogic) DeleteAsset(owner string) error {
	if err := a.assets.Remove(owner); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("删除资源失败: %w", err)
	}
	return nil
}
