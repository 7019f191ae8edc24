package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/auth"
	"github.com/sambutracy/filterfund/internal/logic"
)

// AssetHandler 二进制资源处理器
type AssetHandler struct {
	assetLogic *logic.AssetLogic
}

// NewAssetHandler 创建资源处理器
func NewAssetHandler(assetLogic *logic.AssetLogic) *AssetHandler {
	return &AssetHandler{assetLogic: assetLogic}
}

// StoreAsset 存入当前调用者的资源
func (h *AssetHandler) StoreAsset(c *gin.Context) {
	var req logic.AssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.assetLogic.StoreAsset(auth.Caller(c), req); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "资源存储成功", nil)
}

// GetAsset 按所有者地址读取资源
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetLogic.GetAsset(c.Param("address"))
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取资源成功", asset)
}

// DeleteAsset 删除当前调用者的资源
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetLogic.DeleteAsset(auth.Caller(c)); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资源已删除", nil)
}
