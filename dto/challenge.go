// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	// 规范字段（snake_case）
	Title            string `json:"title"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"` // EASY / MEDIUM / HARD
	Points           uint   `json:"points"`
	Flag             string `json:"flag"`
	Category         string `json:"category"`
	Attachment       string `json:"attachment"`
	Author           string `json:"author"`
	DownloadURL      string `json:"download_url"`
	ChallengeSiteURL string `json:"challenge_site_url"`

	// 兼容旧客户端的 camelCase 别名
	DownloadURLCamel      string `json:"downloadUrl"`
	ChallengeSiteURLCamel string `json:"challengeSiteUrl"`
}

// Normalize 将 camelCase 别名归一化，并做轻量清洗和默认值处理
func (r *CreateChallengeReq) Normalize() {
	if r.DownloadURL == "" && r.DownloadURLCamel != "" {
		r.DownloadURL = r.DownloadURLCamel
	}
	if r.ChallengeSiteURL == "" && r.ChallengeSiteURLCamel != "" {
		r.ChallengeSiteURL = r.ChallengeSiteURLCamel
	}

	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Author = strings.TrimSpace(r.Author)
	r.Difficulty = strings.ToUpper(strings.TrimSpace(r.Difficulty))

	if r.Difficulty == "" {
		r.Difficulty = "MEDIUM"
	}
}

type UpdateChallengeReq struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Difficulty       *string `json:"difficulty"`
	Points           *uint   `json:"points"`
	Flag             *string `json:"flag"`
	Category         *string `json:"category"`
	Attachment       *string `json:"attachment"`
	Author           *string `json:"author"`
	DownloadURL      *string `json:"download_url"`
	ChallengeSiteURL *string `json:"challenge_site_url"`
	IsActive         *bool   `json:"is_active"`
}

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	FlagCamel string `json:"Flag"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
}

// ========== 响应 DTO ==========

// ChallengeItemResp 用户可见的题目信息，不含 Flag
type ChallengeItemResp struct {
	ID               uint32 `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	Points           uint   `json:"points"`
	Category         string `json:"category"`
	Attachment       string `json:"attachment,omitempty"`
	Author           string `json:"author,omitempty"`
	DownloadURL      string `json:"download_url,omitempty"`
	ChallengeSiteURL string `json:"challenge_site_url,omitempty"`
}

type SubmitFlagResp struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
	Points  uint   `json:"points,omitempty"`
}

// AdminChallengeResp 管理员可见的题目信息，含 Flag
type AdminChallengeResp struct {
	ID               uint32 `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	Points           uint   `json:"points"`
	Flag             string `json:"flag"`
	Category         string `json:"category"`
	Attachment       string `json:"attachment,omitempty"`
	Author           string `json:"author,omitempty"`
	DownloadURL      string `json:"download_url,omitempty"`
	ChallengeSiteURL string `json:"challenge_site_url,omitempty"`
	IsActive         bool   `json:"is_active"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// ChallengeStatsResp 单题解题统计
type ChallengeStatsResp struct {
	ChallengeID      uint32 `json:"challenge_id"`
	SolveCount       uint   `json:"solve_count"`
	FirstBlood       string `json:"first_blood,omitempty"`
	TotalSubmissions uint   `json:"total_submissions"`
}
