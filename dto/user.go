// file: dto/user.go
package dto

// RegisterReq 注册请求
type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUsernameReq struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
}

// AdminUpdateUserReq 管理员编辑用户，未提供的字段不修改
type AdminUpdateUserReq struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	IsAdmin         *bool   `json:"is_admin"`
	IsEmailVerified *bool   `json:"is_email_verified"`
}

// UserResp 对外暴露的用户信息
type UserResp struct {
	ID               uint32 `json:"id"`
	Username         string `json:"username"`
	IsAdmin          bool   `json:"is_admin"`
	Score            uint   `json:"score"`
	ChallengesSolved uint   `json:"challenges_solved"`
	IsEmailVerified  bool   `json:"is_email_verified"`
}

// LeaderboardEntryResp 排行榜单行
type LeaderboardEntryResp struct {
	Rank             uint   `json:"rank"`
	ID               uint32 `json:"id"`
	Username         string `json:"username"`
	Score            uint   `json:"score"`
	ChallengesSolved uint   `json:"challenges_solved"`
}

// CategoryProgressResp 单个分类的解题进度
type CategoryProgressResp struct {
	Category   string  `json:"category"`
	Solved     uint    `json:"solved"`
	Total      uint    `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ProgressResp 个人进度汇总
type ProgressResp struct {
	Score              uint                   `json:"score"`
	ChallengesSolved   uint                   `json:"challenges_solved"`
	TotalSubmissions   uint                   `json:"total_submissions"`
	CorrectSubmissions uint                   `json:"correct_submissions"`
	Categories         []CategoryProgressResp `json:"categories"`
}
