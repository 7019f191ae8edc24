package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/auth"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/model"
)

// CampaignHandler 众筹活动处理器
type CampaignHandler struct {
	ledger *ledger.Ledger
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(l *ledger.Ledger) *CampaignHandler {
	return &CampaignHandler{ledger: l}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	target, err := model.ParseAmount(req.Target)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.ledger.CreateCampaign(c.Request.Context(), auth.Caller(c), ledger.CreateCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		MainImage:   req.MainImage,
		FilterImage: req.FilterImage,
		Category:    req.Category,
		Target:      target,
		Deadline:    req.Deadline,
		Filter:      req.Filter,
		CreatorName: req.CreatorName,
	})
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", CreateCampaignResponse{CampaignId: id})
}

// Contribute 向活动捐赠
func (h *CampaignHandler) Contribute(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Contribute(c.Request.Context(), auth.Caller(c), id, amount, req.Message, req.Anonymous); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠成功", nil)
}

// UpdateStatus 启停活动
func (h *CampaignHandler) UpdateStatus(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.UpdateCampaignStatus(auth.Caller(c), id, *req.IsActive); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动状态已更新", nil)
}

// GetCampaign 获取单个活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, err := h.ledger.GetCampaign(id)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动成功", GetCampaignResponse{Campaign: campaign})
}

// GetCampaigns 获取活动列表，支持按类别、创建者、活跃状态筛选，
// 以及 recent/top 两种排序截取
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	var campaigns []model.Campaign
	var err error

	switch {
	case c.Query("category") != "":
		campaigns, err = h.ledger.CampaignsByCategory(c.Query("category"))
	case c.Query("creator") != "":
		campaigns, err = h.ledger.CampaignsByCreator(c.Query("creator"))
	case c.Query("active") == "true":
		campaigns, err = h.ledger.ActiveCampaigns()
	case c.Query("recent") != "":
		n, convErr := strconv.Atoi(c.Query("recent"))
		if convErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "无效的数量参数")
			return
		}
		campaigns, err = h.ledger.RecentCampaigns(n)
	case c.Query("top") != "":
		n, convErr := strconv.Atoi(c.Query("top"))
		if convErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "无效的数量参数")
			return
		}
		campaigns, err = h.ledger.TopCampaigns(n)
	default:
		campaigns, err = h.ledger.ListCampaigns()
	}
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动列表成功", GetCampaignsResponse{Campaigns: campaigns})
}

// GetCampaignCount 获取活动计数
func (h *CampaignHandler) GetCampaignCount(c *gin.Context) {
	count, err := h.ledger.CampaignCount()
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动计数成功", CampaignCountResponse{Count: count})
}

// GetCampaignDonors 获取活动捐赠者
func (h *CampaignHandler) GetCampaignDonors(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	donors, err := h.ledger.CampaignDonors(id)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐赠者成功", CampaignDonorsResponse{Donors: donors})
}

func campaignId(c *gin.Context) (uint32, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint32(id), err
}
