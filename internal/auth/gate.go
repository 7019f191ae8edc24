package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sambutracy/filterfund/internal/config"
)

// CallerKey gin 上下文中调用者地址的键
const CallerKey = "caller"

// ErrAnonymous 请求未携带可解析的身份
var ErrAnonymous = errors.New("匿名调用，无法解析身份")

// Claims JWT载荷，Address 为账户地址
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// Gate 访问门：从请求凭证解析调用者身份，无状态
type Gate struct {
	secret string
	ttl    time.Duration
}

// NewGate 创建访问门
func NewGate(cfg config.AuthConfig) *Gate {
	ttl := time.Duration(cfg.TokenTTL) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{secret: cfg.JWTSecret, ttl: ttl}
}

// IssueToken 为地址签发令牌
func (g *Gate) IssueToken(address string) (string, error) {
	claims := Claims{
		Address: address,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "filterfund",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(g.secret))
}

// Resolve 从 Authorization 头解析调用者地址。
// 头缺失、格式错误、令牌无效或过期时返回 ErrAnonymous。
func (g *Gate) Resolve(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrAnonymous
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		return "", ErrAnonymous
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.secret), nil
	})
	if err != nil {
		return "", ErrAnonymous
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Address == "" {
		return "", ErrAnonymous
	}
	return claims.Address, nil
}

// Middleware 变更类路由的认证中间件，把调用者地址写入上下文
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := g.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(CallerKey, caller)
		c.Next()
	}
}

// Caller 取出中间件解析好的调用者地址
func Caller(c *gin.Context) string {
	caller, _ := c.Get(CallerKey)
	addr, _ := caller.(string)
	return addr
}
