// file: routes/router.go
package routes

import (
	"github.com/Nikesh-Uprety/AOHF-ROOT/controllers"
	"github.com/Nikesh-Uprety/AOHF-ROOT/middlewares"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	JWT        *utils.JWTManager
	Redis      *redis.Client
	Auth       *controllers.AuthController
	Challenge  *controllers.ChallengeController
	Scoreboard *controllers.ScoreboardController
	Admin      *controllers.AdminController
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	auth := middlewares.JWTAuthMiddleware(deps.JWT, deps.Redis)
	admin := middlewares.AdminAuthMiddleware()

	apiV1 := r.Group("/api/v1")
	{
		// --- 认证 ---
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", deps.Auth.Register)
			authRoutes.POST("/login", deps.Auth.Login)
			authRoutes.POST("/logout", auth, deps.Auth.Logout)
			authRoutes.GET("/me", auth, deps.Auth.Me)
		}
		apiV1.GET("/verify-email/:token", deps.Auth.VerifyEmail)

		// --- 题目 ---
		challengeRoutes := apiV1.Group("/challenges")
		{
			challengeRoutes.GET("", deps.Challenge.ListChallenges)
			challengeRoutes.GET("/:id", deps.Challenge.GetChallengeDetail)
			challengeRoutes.GET("/:id/stats", deps.Scoreboard.GetChallengeStats)
			challengeRoutes.POST("/:id/submit", auth, deps.Challenge.SubmitFlag)
		}

		// --- 排行榜与个人数据 ---
		apiV1.GET("/leaderboard", deps.Scoreboard.GetLeaderboard)
		userRoutes := apiV1.Group("/user")
		userRoutes.Use(auth)
		{
			userRoutes.GET("/submissions", deps.Scoreboard.GetMySubmissions)
			userRoutes.GET("/progress", deps.Scoreboard.GetMyProgress)
			userRoutes.PUT("/username", deps.Auth.UpdateUsername)
		}

		// --- 管理员 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth, admin)
		{
			adminRoutes.GET("/challenges", deps.Admin.AdminListChallenges)
			adminRoutes.POST("/challenges", deps.Admin.CreateChallenge)
			adminRoutes.PUT("/challenges/:id", deps.Admin.UpdateChallenge)
			adminRoutes.DELETE("/challenges/:id", deps.Admin.DeleteChallenge)

			adminRoutes.GET("/users", deps.Admin.GetUserList)
			adminRoutes.GET("/users/:id", deps.Admin.GetUserDetail)
			adminRoutes.POST("/users", deps.Admin.CreateUser)
			adminRoutes.PUT("/users/:id", deps.Admin.UpdateUser)
			adminRoutes.DELETE("/users/:id", deps.Admin.DeleteUser)
		}
	}

	return r
}
