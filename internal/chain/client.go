package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sambutracy/filterfund/internal/config"
	"github.com/sambutracy/filterfund/internal/logger"
	"github.com/sambutracy/filterfund/internal/model"
)

// ErrInsufficientBalance 付款账户余额不足
var ErrInsufficientBalance = errors.New("账户余额不足")

// ValueTransfer 价值转移原语：把金额从付款方转给收款方，可能失败
type ValueTransfer interface {
	Transfer(ctx context.Context, from, to string, amount model.Amount) error
}

// Client 以太坊客户端，通过托管账户执行价值转移
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainId    *big.Int
}

// Init 连接以太坊节点
func Init(cfg config.ChainConfig) (*Client, error) {
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{
		client:     client,
		privateKey: privateKey,
		chainId:    big.NewInt(cfg.ChainId),
	}, nil
}

// Transfer 执行一次原生币转账。金额为零时视为成功的空操作。
// 付款方余额不足时返回 ErrInsufficientBalance，转账未提交。
func (c *Client) Transfer(ctx context.Context, from, to string, amount model.Amount) error {
	if amount.IsZero() {
		return nil
	}

	fromAddr := common.HexToAddress(from)
	toAddr := common.HexToAddress(to)
	value := amount.BigInt()

	// 转账前余额检查
	balance, err := c.client.BalanceAt(ctx, fromAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to query balance: %w", err)
	}
	if balance.Cmp(value) < 0 {
		return ErrInsufficientBalance
	}

	operator := crypto.PubkeyToAddress(c.privateKey.PublicKey)
	nonce, err := c.client.PendingNonceAt(ctx, operator)
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to suggest gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, toAddr, value, 21000, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Info("Transfer submitted: %s -> %s amount=%s tx=%s",
		from, to, amount.String(), signedTx.Hash().Hex())
	return nil
}

// BalanceAt 查询账户当前余额
func (c *Client) BalanceAt(ctx context.Context, account string) (*big.Int, error) {
	return c.client.BalanceAt(ctx, common.HexToAddress(account), nil)
}

// Close 关闭底层连接
func (c *Client) Close() {
	c.client.Close()
}
