// file: controllers/auth_controller.go
package controllers

import (
	"errors"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/dto"
	"github.com/Nikesh-Uprety/AOHF-ROOT/middlewares"
	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/Nikesh-Uprety/AOHF-ROOT/services"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type AuthController struct {
	store store.Store
	jwt   *utils.JWTManager
	email *services.EmailService
	rdb   *redis.Client
	log   *zap.SugaredLogger
}

func NewAuthController(st store.Store, jwtMgr *utils.JWTManager, email *services.EmailService, rdb *redis.Client, log *zap.SugaredLogger) *AuthController {
	return &AuthController{store: st, jwt: jwtMgr, email: email, rdb: rdb, log: log}
}

// Register 用户注册，成功后直接签发 Token 并发送验证邮件
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := ac.store.GetUserByUsername(ctx, req.Username); err == nil {
		utils.Error(c, 2001, "用户名已被注册")
		return
	}
	if _, err := ac.store.GetUserByEmail(ctx, req.Email); err == nil {
		utils.Error(c, 2001, "邮箱已被注册")
		return
	}

	hashed, err := models.HashPassword(req.Password)
	if err != nil {
		utils.Error(c, 5000, "密码处理失败")
		return
	}

	verifyToken := utils.GenerateVerificationToken()
	newUser := models.User{
		Username:               req.Username,
		Email:                  req.Email,
		Password:               hashed,
		EmailVerificationToken: &verifyToken,
	}
	if err := ac.store.CreateUser(ctx, &newUser); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.Error(c, 2001, "用户名或邮箱已被注册")
			return
		}
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	// 验证邮件 best-effort，失败只记日志不影响注册
	if ac.email.Enabled() {
		go func(email, token string) {
			if err := ac.email.SendVerificationEmail(email, token); err != nil {
				ac.log.Warnw("send verification email failed", "to", email, "err", err)
			}
		}(newUser.Email, verifyToken)
	}

	token, err := ac.jwt.GenerateToken(&newUser)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"token": token,
		"user": dto.UserResp{
			ID:               newUser.ID,
			Username:         newUser.Username,
			IsAdmin:          newUser.IsAdmin,
			Score:            newUser.Score,
			ChallengesSolved: newUser.ChallengesSolved,
			IsEmailVerified:  newUser.IsEmailVerified,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	user, err := ac.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}

	token, err := ac.jwt.GenerateToken(user)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": dto.UserResp{
			ID:               user.ID,
			Username:         user.Username,
			IsAdmin:          user.IsAdmin,
			Score:            user.Score,
			ChallengesSolved: user.ChallengesSolved,
			IsEmailVerified:  user.IsEmailVerified,
		},
	})
}

// Logout 将当前 Token 的 jti 写入黑名单直至其过期
func (ac *AuthController) Logout(c *gin.Context) {
	jtiAny, _ := c.Get("token_jti")
	expAny, _ := c.Get("token_exp")
	jti, _ := jtiAny.(string)
	exp, _ := expAny.(time.Time)

	if ac.rdb != nil && jti != "" {
		ttl := time.Until(exp)
		if ttl > 0 {
			if err := ac.rdb.Set(c.Request.Context(), middlewares.DenylistKeyPrefix+jti, "1", ttl).Err(); err != nil {
				ac.log.Warnw("denylist token failed", "err", err)
			}
		}
	}
	utils.Success(c, "Logged out successfully", nil)
}

func (ac *AuthController) Me(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	user, err := ac.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}
	utils.Success(c, "success", dto.UserResp{
		ID:               user.ID,
		Username:         user.Username,
		IsAdmin:          user.IsAdmin,
		Score:            user.Score,
		ChallengesSolved: user.ChallengesSolved,
		IsEmailVerified:  user.IsEmailVerified,
	})
}

// UpdateUsername 修改当前用户的用户名
func (ac *AuthController) UpdateUsername(c *gin.Context) {
	var req dto.UpdateUsernameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	ctx := c.Request.Context()
	user, err := ac.store.GetUser(ctx, userID)
	if err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	user.Username = req.Username
	if err := ac.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.Error(c, 2001, "用户名已被占用")
			return
		}
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}
	utils.Success(c, "Username updated successfully", gin.H{"username": user.Username})
}

// VerifyEmail 校验邮箱验证令牌并标记账号已验证
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.Error(c, 1001, "缺少验证令牌")
		return
	}

	ctx := c.Request.Context()
	user, err := ac.store.GetUserByVerificationToken(ctx, token)
	if err != nil {
		utils.Error(c, 4004, "验证链接无效或已过期")
		return
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	if err := ac.store.UpdateUser(ctx, user); err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}
	utils.Success(c, "Email verified successfully", gin.H{"username": user.Username})
}
