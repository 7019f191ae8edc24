package model

import (
	"errors"
	"fmt"
	"math/big"
)

// maxAmount 金额上限（2^128-1）
var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Amount 无符号128位金额，加法在上限处饱和，不回绕
type Amount struct {
	i *big.Int
}

// NewAmount 从 uint64 创建金额
func NewAmount(v uint64) Amount {
	return Amount{i: new(big.Int).SetUint64(v)}
}

// ParseAmount 解析十进制金额字符串
func ParseAmount(s string) (Amount, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("无效的金额: %q", s)
	}
	if i.Sign() < 0 {
		return Amount{}, errors.New("金额不能为负数")
	}
	if i.Cmp(maxAmount) > 0 {
		return Amount{}, errors.New("金额超出上限")
	}
	return Amount{i: i}, nil
}

// MaxAmount 返回金额上限
func MaxAmount() Amount {
	return Amount{i: new(big.Int).Set(maxAmount)}
}

func (a Amount) value() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// Add 饱和加法，结果在 2^128-1 处截断
func (a Amount) Add(b Amount) Amount {
	sum := new(big.Int).Add(a.value(), b.value())
	if sum.Cmp(maxAmount) > 0 {
		sum.Set(maxAmount)
	}
	return Amount{i: sum}
}

// Cmp 比较两个金额，返回 -1、0、1
func (a Amount) Cmp(b Amount) int {
	return a.value().Cmp(b.value())
}

// IsZero 金额是否为零
func (a Amount) IsZero() bool {
	return a.value().Sign() == 0
}

// BigInt 返回金额的副本
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.value())
}

// String 十进制字符串表示
func (a Amount) String() string {
	return a.value().String()
}

// MarshalJSON 金额序列化为十进制字符串
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON 从十进制字符串反序列化金额
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" || s == "" {
		a.i = new(big.Int)
		return nil
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	a.i = parsed.i
	return nil
}
