package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sambutracy/filterfund/internal/auth"
	"github.com/sambutracy/filterfund/internal/config"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/logic"
	"github.com/sambutracy/filterfund/internal/model"
	"github.com/sambutracy/filterfund/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferFunc func(ctx context.Context, from, to string, amount model.Amount) error

func (f transferFunc) Transfer(ctx context.Context, from, to string, amount model.Amount) error {
	return f(ctx, from, to, amount)
}

type testEnv struct {
	router *gin.Engine
	gate   *auth.Gate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := ledger.New(
		store.NewMemory[uint32, model.Campaign](),
		store.NewMemory[string, uint32](),
		transferFunc(func(context.Context, string, string, model.Amount) error { return nil }),
		model.NewAmount(1),
		24*time.Hour,
	)
	profileLogic := logic.NewProfileLogic(store.NewMemory[string, model.UserProfile]())
	assetLogic := logic.NewAssetLogic(store.NewMemory[string, model.Asset]())
	gate := auth.NewGate(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 3600})

	return &testEnv{
		router: Setup(l, profileLogic, assetLogic, gate),
		gate:   gate,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) token(t *testing.T, address string) string {
	t.Helper()
	token, err := e.gate.IssueToken(address)
	require.NoError(t, err)
	return token
}

func campaignBody(target string, deadline time.Time) map[string]interface{} {
	return map[string]interface{}{
		"title":        "Clean water filter",
		"description":  "AR filter raising funds",
		"category":     "Environment",
		"target":       target,
		"deadline":     deadline.Format(time.RFC3339),
		"creator_name": "Alice",
		"filter": map[string]string{
			"platform":    "Instagram",
			"filter_type": "Face",
			"filter_url":  "https://example.com/ar",
		},
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "filterfund-service")
}

func TestCreateCampaign_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/campaigns", "",
		campaignBody("1000", time.Now().Add(48*time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCampaign_Flow(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "0xalice")

	w := env.do(t, http.MethodPost, "/api/v1/campaigns", token,
		campaignBody("1000000", time.Now().Add(48*time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			CampaignId uint32 `json:"campaign_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint32(0), resp.Data.CampaignId)

	w = env.do(t, http.MethodGet, "/api/v1/campaigns/0", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xalice")

	w = env.do(t, http.MethodGet, "/api/v1/campaign-count", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestCreateCampaign_StrictValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "0xalice")

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{
			name: "target zero rejected",
			body: campaignBody("0", time.Now().Add(48*time.Hour)),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "deadline too soon rejected",
			body: campaignBody("1000", time.Now().Add(time.Hour)),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "negative target is a bad request",
			body: campaignBody("-10", time.Now().Add(48*time.Hour)),
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/campaigns", token, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	// 拒绝的活动没有被存储
	w := env.do(t, http.MethodGet, "/api/v1/campaign-count", "", nil)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestContribute_Flow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/campaigns", env.token(t, "0xalice"),
		campaignBody("1000000", time.Now().Add(48*time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/campaigns/0/contribute", env.token(t, "0xbob"),
		map[string]interface{}{"amount": "500", "message": "good luck"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/campaigns/0", "", nil)
	assert.Contains(t, w.Body.String(), `"amount_collected":"500"`)

	w = env.do(t, http.MethodGet, "/api/v1/campaigns/0/donors", "", nil)
	assert.Contains(t, w.Body.String(), "0xbob")
}

func TestContribute_MissingCampaign(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/campaigns/42/contribute", env.token(t, "0xbob"),
		map[string]interface{}{"amount": "500"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus_OnlyCreator(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/campaigns", env.token(t, "0xalice"),
		campaignBody("1000", time.Now().Add(48*time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/campaigns/0/status", env.token(t, "0xmallory"),
		map[string]interface{}{"is_active": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/campaigns/0/status", env.token(t, "0xalice"),
		map[string]interface{}{"is_active": false})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfile_Flow(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "0xalice")

	body := map[string]interface{}{"username": "alice", "email": "alice@example.com"}

	w := env.do(t, http.MethodPost, "/api/v1/profiles", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/profiles", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/profiles/0xalice", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	w = env.do(t, http.MethodDelete, "/api/v1/profiles", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/profiles/0xalice", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAsset_Flow(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "0xalice")

	body := map[string]interface{}{
		"filename":     "filter.png",
		"content_type": "image/png",
		"asset_type":   "filter-image",
		"data":         []byte{1, 2, 3},
	}

	w := env.do(t, http.MethodPost, "/api/v1/assets", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/assets/0xalice", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "filter.png")

	w = env.do(t, http.MethodDelete, "/api/v1/assets", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/assets/0xalice", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/token", "",
		map[string]interface{}{"address": "0xalice"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	// 签发的令牌可以直接用于变更操作
	w = env.do(t, http.MethodPost, "/api/v1/campaigns", resp.Data.Token,
		campaignBody("1000", time.Now().Add(48*time.Hour)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListCampaigns_Filters(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "0xalice")

	for i := 0; i < 3; i++ {
		body := campaignBody("1000", time.Now().Add(48*time.Hour))
		if i == 2 {
			body["category"] = "Health"
		}
		w := env.do(t, http.MethodPost, "/api/v1/campaigns", token, body)
		require.Equal(t, http.StatusCreated, w.Code, fmt.Sprintf("campaign %d", i))
	}

	w := env.do(t, http.MethodGet, "/api/v1/campaigns?category=Health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Campaigns []model.Campaign `json:"campaigns"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Campaigns, 1)
	assert.Equal(t, uint32(2), resp.Data.Campaigns[0].Id)

	w = env.do(t, http.MethodGet, "/api/v1/campaigns?recent=2", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Campaigns, 2)
	assert.Equal(t, uint32(2), resp.Data.Campaigns[0].Id)
}
