// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeDifficulty string

const (
	ChallengeDifficultyEasy   ChallengeDifficulty = "EASY"
	ChallengeDifficultyMedium ChallengeDifficulty = "MEDIUM"
	ChallengeDifficultyHard   ChallengeDifficulty = "HARD"
)

// Challenge 对应 aohf_challenge 表。Flag 字段只在管理员接口序列化，
// 普通用户响应一律走 dto 层剥离。
type Challenge struct {
	ID               uint32              `gorm:"primarykey" json:"id"`
	Title            string              `gorm:"size:100;not null" json:"title"`
	Description      string              `gorm:"type:text;not null" json:"description"`
	Difficulty       ChallengeDifficulty `gorm:"type:enum('EASY','MEDIUM','HARD');default:'MEDIUM'" json:"difficulty"`
	Points           uint                `gorm:"not null" json:"points"`
	Flag             string              `gorm:"size:255;not null" json:"-"`
	Category         string              `gorm:"size:50;not null" json:"category"`
	Attachment       string              `gorm:"size:2048" json:"attachment,omitempty"`
	Author           string              `gorm:"size:50" json:"author,omitempty"`
	DownloadURL      string              `gorm:"size:2048" json:"download_url,omitempty"`
	ChallengeSiteURL string              `gorm:"size:2048" json:"challenge_site_url,omitempty"`
	IsActive         bool                `gorm:"default:1" json:"is_active"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "aohf_challenge"
}
