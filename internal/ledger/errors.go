package ledger

import (
	"errors"
)

// 账本操作的错误类型，调用方用 errors.Is 判别
var (
	ErrCampaignNotFound = errors.New("众筹活动不存在")
	ErrCampaignExpired  = errors.New("众筹活动已结束，无法接受捐赠")
	ErrDeadlineTooSoon  = errors.New("截止时间距当前时间太近")
	ErrInvalidTarget    = errors.New("目标金额低于最低限制")
	ErrNotEnoughBalance = errors.New("账户余额不足")
	ErrTransferFailed   = errors.New("转账失败")
	ErrUnauthorized     = errors.New("未授权的调用")
)
