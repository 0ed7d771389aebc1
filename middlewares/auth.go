// file: middlewares/auth.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const DenylistKeyPrefix = "token:denylist:"

// JWTAuthMiddleware 验证用户是否登录。
// rdb 非空时额外检查登出黑名单；rdb 为空时跳过（内存模式）。
func JWTAuthMiddleware(jwtMgr *utils.JWTManager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(c, 4001, "请求头中 Authorization 为空")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Error(c, 4002, "Authorization 格式有误")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, 4003, "无效的 Token")
			c.Abort()
			return
		}

		if rdb != nil {
			exists, err := rdb.Exists(c.Request.Context(), DenylistKeyPrefix+claims.ID).Result()
			if err == nil && exists > 0 {
				utils.Error(c, 4003, "Token 已失效")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("is_admin", claims.IsAdmin)
		c.Set("token_jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)
		c.Next()
	}
}

// AdminAuthMiddleware 验证管理员权限，必须在 JWTAuthMiddleware 之后使用
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdminAny, exists := c.Get("is_admin")
		if !exists {
			utils.Error(c, 5001, "无法获取用户角色信息")
			c.Abort()
			return
		}
		if isAdmin, ok := isAdminAny.(bool); !ok || !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"code": 4003, "msg": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}
