// file: controllers/challenge_controller_test.go
package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nikesh-Uprety/AOHF-ROOT/controllers"
	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/Nikesh-Uprety/AOHF-ROOT/routes"
	"github.com/Nikesh-Uprety/AOHF-ROOT/services"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	store  *store.MemoryStore
	jwt    *utils.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	sugar := zap.NewNop().Sugar()
	jwtMgr := utils.NewJWTManager("test-secret")
	emailSvc := services.NewEmailService("", "", "", "", "http://localhost", sugar)
	scoringSvc := services.NewScoringService(st, sugar)
	statsSvc := services.NewStatsService(st)

	router := routes.SetupRouter(routes.RouterDeps{
		JWT:        jwtMgr,
		Redis:      nil,
		Auth:       controllers.NewAuthController(st, jwtMgr, emailSvc, nil, sugar),
		Challenge:  controllers.NewChallengeController(st, scoringSvc),
		Scoreboard: controllers.NewScoreboardController(st, statsSvc, nil),
		Admin:      controllers.NewAdminController(st),
	})
	return &testServer{router: router, store: st, jwt: jwtMgr}
}

func (ts *testServer) createUser(t *testing.T, username string, isAdmin bool) (*models.User, string) {
	t.Helper()
	hashed, err := models.HashPassword("password123")
	require.NoError(t, err)
	u := &models.User{Username: username, Email: username + "@x.com", Password: hashed, IsAdmin: isAdmin}
	require.NoError(t, ts.store.CreateUser(context.Background(), u))
	token, err := ts.jwt.GenerateToken(u)
	require.NoError(t, err)
	return u, token
}

func (ts *testServer) createChallenge(t *testing.T, title, flag, category string, points uint) *models.Challenge {
	t.Helper()
	ch := &models.Challenge{
		Title: title, Description: "d", Difficulty: models.ChallengeDifficultyEasy,
		Points: points, Flag: flag, Category: category, IsActive: true,
	}
	require.NoError(t, ts.store.CreateChallenge(context.Background(), ch))
	return ch
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
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
	ts.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestSubmitFlagEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "alice", false)
	ts.createChallenge(t, "Space", "CTF{sp4c3}", "misc", 100)

	// 未登录
	w, env := ts.do(t, http.MethodPost, "/api/v1/challenges/1/submit", "", gin.H{"flag": "CTF{sp4c3}"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4001, env.Code)

	// 正确提交
	_, env = ts.do(t, http.MethodPost, "/api/v1/challenges/1/submit", token, gin.H{"flag": " CTF{sp4c3} "})
	require.Equal(t, 0, env.Code, "msg=%s", env.Msg)
	var result struct {
		Correct bool `json:"correct"`
		Points  uint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Correct)
	assert.Equal(t, uint(100), result.Points)

	// 重复提交被拒绝
	_, env = ts.do(t, http.MethodPost, "/api/v1/challenges/1/submit", token, gin.H{"flag": "CTF{sp4c3}"})
	assert.Equal(t, 4005, env.Code)

	// 错误 Flag 是正常结果
	ts.createChallenge(t, "Web", "CTF{web}", "web", 200)
	_, env = ts.do(t, http.MethodPost, "/api/v1/challenges/2/submit", token, gin.H{"flag": "CTF{nope}"})
	require.Equal(t, 0, env.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Correct)

	// 不存在的题目
	_, env = ts.do(t, http.MethodPost, "/api/v1/challenges/99/submit", token, gin.H{"flag": "CTF{x}"})
	assert.Equal(t, 4004, env.Code)

	// 空 Flag
	_, env = ts.do(t, http.MethodPost, "/api/v1/challenges/2/submit", token, gin.H{"flag": "  "})
	assert.Equal(t, 1001, env.Code)
}

func TestListChallengesHidesFlag(t *testing.T) {
	ts := newTestServer(t)
	ts.createChallenge(t, "Secret", "CTF{sup3r_s3cr3t}", "web", 100)

	w, env := ts.do(t, http.MethodGet, "/api/v1/challenges", "", nil)
	require.Equal(t, 0, env.Code)
	assert.NotContains(t, w.Body.String(), "CTF{sup3r_s3cr3t}")
	assert.NotContains(t, w.Body.String(), "\"flag\"")

	// 详情同样不下发 Flag
	w, env = ts.do(t, http.MethodGet, "/api/v1/challenges/1", "", nil)
	require.Equal(t, 0, env.Code)
	assert.NotContains(t, w.Body.String(), "CTF{sup3r_s3cr3t}")
}

func TestAdminChallengeCRUD(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.createUser(t, "mortal", false)
	_, adminToken := ts.createUser(t, "root", true)

	// 普通用户被拒
	w, _ := ts.do(t, http.MethodPost, "/api/v1/admin/challenges", userToken, gin.H{
		"title": "X", "description": "d", "points": 100, "flag": "CTF{x}", "category": "web",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 管理员创建
	_, env := ts.do(t, http.MethodPost, "/api/v1/admin/challenges", adminToken, gin.H{
		"title": "X", "description": "d", "points": 100, "flag": "CTF{x}", "category": "web",
	})
	require.Equal(t, 0, env.Code, "msg=%s", env.Msg)

	// 管理员列表可见 Flag
	w, env = ts.do(t, http.MethodGet, "/api/v1/admin/challenges", adminToken, nil)
	require.Equal(t, 0, env.Code)
	assert.Contains(t, w.Body.String(), "CTF{x}")

	// 编辑
	_, env = ts.do(t, http.MethodPut, "/api/v1/admin/challenges/1", adminToken, gin.H{"points": 250, "is_active": false})
	require.Equal(t, 0, env.Code, "msg=%s", env.Msg)

	ch, err := ts.store.GetChallenge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(250), ch.Points)
	assert.False(t, ch.IsActive)

	// 下架后用户提交返回题目不存在
	_, env = ts.do(t, http.MethodPost, "/api/v1/challenges/1/submit", userToken, gin.H{"flag": "CTF{x}"})
	assert.Equal(t, 4004, env.Code)

	// 删除
	_, env = ts.do(t, http.MethodDelete, "/api/v1/admin/challenges/1", adminToken, nil)
	require.Equal(t, 0, env.Code)
	_, env = ts.do(t, http.MethodDelete, "/api/v1/admin/challenges/1", adminToken, nil)
	assert.Equal(t, 4004, env.Code)
}

func TestLeaderboardEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin", true)
	u1, _ := ts.createUser(t, "one", false)
	u2, _ := ts.createUser(t, "two", false)
	require.NoError(t, ts.store.AwardPoints(context.Background(), u1.ID, 300))
	require.NoError(t, ts.store.AwardPoints(context.Background(), u2.ID, 700))

	_, env := ts.do(t, http.MethodGet, "/api/v1/leaderboard?limit=10", "", nil)
	require.Equal(t, 0, env.Code)

	var entries []struct {
		Rank     uint   `json:"rank"`
		Username string `json:"username"`
		Score    uint   `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].Username)
	assert.Equal(t, uint(700), entries[0].Score)
	assert.Equal(t, "one", entries[1].Username)
}
