// file: controllers/challenge_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/Nikesh-Uprety/AOHF-ROOT/dto"
	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/Nikesh-Uprety/AOHF-ROOT/services"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	store   store.Store
	scoring *services.ScoringService
}

func NewChallengeController(st store.Store, scoring *services.ScoringService) *ChallengeController {
	return &ChallengeController{store: st, scoring: scoring}
}

func challengeToItem(ch models.Challenge) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:               ch.ID,
		Title:            ch.Title,
		Description:      ch.Description,
		Difficulty:       string(ch.Difficulty),
		Points:           ch.Points,
		Category:         ch.Category,
		Attachment:       ch.Attachment,
		Author:           ch.Author,
		DownloadURL:      ch.DownloadURL,
		ChallengeSiteURL: ch.ChallengeSiteURL,
	}
}

// ListChallenges 用户可见的题目列表，Flag 不下发
func (cc *ChallengeController) ListChallenges(c *gin.Context) {
	challenges, err := cc.store.ListChallenges(c.Request.Context(), true)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, challengeToItem(ch))
	}
	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail 题目详情（隐藏题目对用户不可见）
func (cc *ChallengeController) GetChallengeDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的题目ID")
		return
	}

	ch, err := cc.store.GetChallenge(c.Request.Context(), uint32(id))
	if err != nil || !ch.IsActive {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	utils.Success(c, "success", challengeToItem(*ch))
}

// SubmitFlag 提交 Flag，判题逻辑全部在 ScoringService
func (cc *ChallengeController) SubmitFlag(c *gin.Context) {
	challengeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的题目ID")
		return
	}

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	userIDAny, exists := c.Get("user_id")
	if !exists {
		utils.Error(c, 4001, "未登录")
		return
	}
	userID := userIDAny.(uint32)

	result, err := cc.scoring.SubmitFlag(c.Request.Context(), userID, uint32(challengeID), req.Flag)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyFlag):
			utils.Error(c, 1001, "Flag 不能为空")
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, 4004, "题目不存在")
		case errors.Is(err, services.ErrAlreadySolved):
			utils.Error(c, 4005, "Challenge already solved")
		default:
			utils.Error(c, 5000, "提交失败: "+err.Error())
		}
		return
	}

	utils.Success(c, result.Message, dto.SubmitFlagResp{
		Correct: result.Correct,
		Message: result.Message,
		Points:  result.Points,
	})
}
