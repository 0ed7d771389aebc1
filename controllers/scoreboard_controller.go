// file: controllers/scoreboard_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/dto"
	"github.com/Nikesh-Uprety/AOHF-ROOT/services"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type ScoreboardController struct {
	store store.Store
	stats *services.StatsService
	rdb   *redis.Client
}

func NewScoreboardController(st store.Store, stats *services.StatsService, rdb *redis.Client) *ScoreboardController {
	return &ScoreboardController{store: st, stats: stats, rdb: rdb}
}

// GetLeaderboard 查询排行榜，带 15 秒 Redis 缓存保证准实时性
func (sc *ScoreboardController) GetLeaderboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if sc.rdb != nil {
		if val, err := sc.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var entries []dto.LeaderboardEntryResp
			if json.Unmarshal([]byte(val), &entries) == nil {
				utils.Success(c, "success (from cache)", entries)
				return
			}
		}
	}

	entries, err := sc.stats.Leaderboard(ctx, limit)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	if sc.rdb != nil {
		if jsonData, err := json.Marshal(entries); err == nil {
			sc.rdb.Set(ctx, cacheKey, jsonData, 15*time.Second)
		}
	}
	utils.Success(c, "success", entries)
}

// GetMySubmissions 查询自己的提交台账
func (sc *ScoreboardController) GetMySubmissions(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	subs, err := sc.store.ListSubmissionsByUser(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", gin.H{
		"total":       len(subs),
		"submissions": subs,
	})
}

// GetMyProgress 个人进度汇总（总分、解题数、分类进度）
func (sc *ScoreboardController) GetMyProgress(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	progress, err := sc.stats.Progress(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", progress)
}

// GetChallengeStats 单题解题统计（解出人数、一血、提交总数）
func (sc *ScoreboardController) GetChallengeStats(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的题目ID")
		return
	}

	stats, err := sc.stats.ChallengeStats(c.Request.Context(), uint32(id))
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			utils.Error(c, 4004, "题目不存在")
			return
		}
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", stats)
}
