package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/logic"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailWith 按错误类型映射HTTP状态码，错误原样透出
func FailWith(c *gin.Context, err error) {
	ErrorResponse(c, statusFromError(err), err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrCampaignNotFound), errors.Is(err, logic.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrCampaignExpired),
		errors.Is(err, ledger.ErrDeadlineTooSoon),
		errors.Is(err, ledger.ErrInvalidTarget),
		errors.Is(err, ledger.ErrNotEnoughBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
