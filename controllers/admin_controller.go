// file: controllers/admin_controller.go
package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Nikesh-Uprety/AOHF-ROOT/dto"
	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	store store.Store
}

func NewAdminController(st store.Store) *AdminController {
	return &AdminController{store: st}
}

func challengeToAdminResp(ch models.Challenge) dto.AdminChallengeResp {
	return dto.AdminChallengeResp{
		ID:               ch.ID,
		Title:            ch.Title,
		Description:      ch.Description,
		Difficulty:       string(ch.Difficulty),
		Points:           ch.Points,
		Flag:             ch.Flag,
		Category:         ch.Category,
		Attachment:       ch.Attachment,
		Author:           ch.Author,
		DownloadURL:      ch.DownloadURL,
		ChallengeSiteURL: ch.ChallengeSiteURL,
		IsActive:         ch.IsActive,
		CreatedAt:        ch.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        ch.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ---- 题目管理 ----

// CreateChallenge 创建题目
func (a *AdminController) CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	if req.Title == "" || req.Description == "" || req.Category == "" || req.Points == 0 {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}
	if strings.TrimSpace(req.Flag) == "" {
		utils.Error(c, 1002, "题目必须提供 Flag")
		return
	}
	if req.Difficulty != "EASY" && req.Difficulty != "MEDIUM" && req.Difficulty != "HARD" {
		utils.Error(c, 1001, "difficulty 取值无效（EASY/MEDIUM/HARD）")
		return
	}

	ch := models.Challenge{
		Title:            req.Title,
		Description:      req.Description,
		Difficulty:       models.ChallengeDifficulty(req.Difficulty),
		Points:           req.Points,
		Flag:             req.Flag,
		Category:         req.Category,
		Attachment:       req.Attachment,
		Author:           req.Author,
		DownloadURL:      req.DownloadURL,
		ChallengeSiteURL: req.ChallengeSiteURL,
		IsActive:         true,
	}
	if err := a.store.CreateChallenge(c.Request.Context(), &ch); err != nil {
		utils.Error(c, 5000, "创建题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": ch.ID})
}

// UpdateChallenge 编辑题目，未提供的字段保持不变
func (a *AdminController) UpdateChallenge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的题目ID")
		return
	}

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	ch, err := a.store.GetChallenge(ctx, uint32(id))
	if err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	if req.Title != nil {
		ch.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		ch.Description = *req.Description
	}
	if req.Difficulty != nil {
		d := strings.ToUpper(strings.TrimSpace(*req.Difficulty))
		if d != "EASY" && d != "MEDIUM" && d != "HARD" {
			utils.Error(c, 1001, "difficulty 取值无效（EASY/MEDIUM/HARD）")
			return
		}
		ch.Difficulty = models.ChallengeDifficulty(d)
	}
	if req.Points != nil {
		if *req.Points == 0 {
			utils.Error(c, 1001, "points 必须为正整数")
			return
		}
		ch.Points = *req.Points
	}
	if req.Flag != nil {
		if strings.TrimSpace(*req.Flag) == "" {
			utils.Error(c, 1002, "Flag 不能为空")
			return
		}
		ch.Flag = *req.Flag
	}
	if req.Category != nil {
		ch.Category = strings.TrimSpace(*req.Category)
	}
	if req.Attachment != nil {
		ch.Attachment = *req.Attachment
	}
	if req.Author != nil {
		ch.Author = *req.Author
	}
	if req.DownloadURL != nil {
		ch.DownloadURL = *req.DownloadURL
	}
	if req.ChallengeSiteURL != nil {
		ch.ChallengeSiteURL = *req.ChallengeSiteURL
	}
	if req.IsActive != nil {
		ch.IsActive = *req.IsActive
	}

	if err := a.store.UpdateChallenge(ctx, ch); err != nil {
		utils.Error(c, 5000, "更新题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge updated successfully", challengeToAdminResp(*ch))
}

// DeleteChallenge 删除题目（台账历史保留）
func (a *AdminController) DeleteChallenge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的题目ID")
		return
	}

	if err := a.store.DeleteChallenge(c.Request.Context(), uint32(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(c, 4004, "题目不存在")
			return
		}
		utils.Error(c, 5000, "删除题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge deleted successfully", nil)
}

// AdminListChallenges 管理员题目列表（含隐藏题目和 Flag）
func (a *AdminController) AdminListChallenges(c *gin.Context) {
	challenges, err := a.store.ListChallenges(c.Request.Context(), false)
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	items := make([]dto.AdminChallengeResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, challengeToAdminResp(ch))
	}
	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// ---- 用户管理 ----

func (a *AdminController) GetUserList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	query := strings.ToLower(c.Query("query"))

	users, err := a.store.ListUsers(c.Request.Context())
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	filtered := users[:0]
	for _, u := range users {
		if query == "" ||
			strings.Contains(strings.ToLower(u.Username), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			filtered = append(filtered, u)
		}
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	resultUsers := make([]gin.H, 0, end-start)
	for _, u := range filtered[start:end] {
		resultUsers = append(resultUsers, gin.H{
			"id":                u.ID,
			"username":          u.Username,
			"email":             u.Email,
			"is_admin":          u.IsAdmin,
			"score":             u.Score,
			"challenges_solved": u.ChallengesSolved,
			"is_email_verified": u.IsEmailVerified,
			"created_at":        u.CreatedAt,
		})
	}
	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"users": resultUsers,
	})
}

func (a *AdminController) GetUserDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的用户ID")
		return
	}

	user, err := a.store.GetUser(c.Request.Context(), uint32(id))
	if err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}
	utils.Success(c, "success", gin.H{
		"id":                user.ID,
		"username":          user.Username,
		"email":             user.Email,
		"is_admin":          user.IsAdmin,
		"score":             user.Score,
		"challenges_solved": user.ChallengesSolved,
		"is_email_verified": user.IsEmailVerified,
		"created_at":        user.CreatedAt,
	})
}

// CreateUser 管理员直接创建用户
func (a *AdminController) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=20"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	hashed, err := models.HashPassword(req.Password)
	if err != nil {
		utils.Error(c, 5000, "密码处理失败")
		return
	}
	user := models.User{
		Username:        req.Username,
		Email:           req.Email,
		Password:        hashed,
		IsAdmin:         req.IsAdmin,
		IsEmailVerified: true,
	}
	if err := a.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.Error(c, 2001, "用户名或邮箱已被注册")
			return
		}
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}
	utils.Success(c, "User created successfully", gin.H{"id": user.ID})
}

// UpdateUser 管理员编辑用户信息
func (a *AdminController) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的用户ID")
		return
	}

	var req dto.AdminUpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := a.store.GetUser(ctx, uint32(id))
	if err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hashed, err := models.HashPassword(*req.Password)
		if err != nil {
			utils.Error(c, 5000, "密码处理失败")
			return
		}
		user.Password = hashed
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsEmailVerified != nil {
		user.IsEmailVerified = *req.IsEmailVerified
	}

	if err := a.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.Error(c, 2001, "用户名或邮箱已被占用")
			return
		}
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}
	utils.Success(c, "User updated successfully", nil)
}

// DeleteUser 删除用户（不允许删除自己；台账历史保留）
func (a *AdminController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的用户ID")
		return
	}

	requesterAny, _ := c.Get("user_id")
	if requester, ok := requesterAny.(uint32); ok && requester == uint32(id) {
		utils.Error(c, 2011, "不能删除当前登录的账号")
		return
	}

	if err := a.store.DeleteUser(c.Request.Context(), uint32(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(c, 4004, "用户不存在")
			return
		}
		utils.Error(c, 5000, "删除用户失败: "+err.Error())
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}
