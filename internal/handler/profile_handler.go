package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/auth"
	"github.com/sambutracy/filterfund/internal/logic"
	"github.com/sambutracy/filterfund/internal/model"
)

// ProfileHandler 用户资料处理器
type ProfileHandler struct {
	profileLogic *logic.ProfileLogic
}

// NewProfileHandler 创建用户资料处理器
func NewProfileHandler(profileLogic *logic.ProfileLogic) *ProfileHandler {
	return &ProfileHandler{profileLogic: profileLogic}
}

// CreateProfile 注册当前调用者的资料
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req logic.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profileLogic.CreateProfile(auth.Caller(c), req); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "用户资料创建成功", nil)
}

// GetProfile 按地址读取资料
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileLogic.GetProfile(c.Param("address"))
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取用户资料成功", profile)
}

// UpdateProfile 更新当前调用者的资料
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req logic.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profileLogic.UpdateProfile(auth.Caller(c), req); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "用户资料更新成功", nil)
}

// UpdateStats 累加当前调用者的统计信息
func (h *ProfileHandler) UpdateStats(c *gin.Context) {
	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donated := model.NewAmount(0)
	if req.Donated != "" {
		var err error
		donated, err = model.ParseAmount(req.Donated)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.profileLogic.UpdateStats(auth.Caller(c), req.CampaignsCreated, donated); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "用户统计已更新", nil)
}

// DeleteProfile 删除当前调用者的资料
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profileLogic.DeleteProfile(auth.Caller(c)); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "用户资料已删除", nil)
}
