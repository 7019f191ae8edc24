package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/auth"
)

// AuthHandler 令牌签发处理器。
// 地址本身的签名校验由底层账本运行时承担，这里只负责身份的携带。
type AuthHandler struct {
	gate *auth.Gate
}

// NewAuthHandler 创建令牌处理器
func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// IssueToken 为地址签发访问令牌
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.gate.IssueToken(req.Address)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "令牌签发成功", TokenResponse{Token: token})
}
