// file: models/submission.go
package models

import (
	"time"
)

// Submission 对应 aohf_submission 表，记录每一次 Flag 提交（对错均记录）。
// 只追加，不修改、不删除；题目或用户被删除后历史记录仍然保留。
type Submission struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint32    `gorm:"index;not null" json:"user_id"`
	ChallengeID uint32    `gorm:"index;not null" json:"challenge_id"`
	Flag        string    `gorm:"size:255;not null" json:"flag"`
	IsCorrect   bool      `gorm:"not null" json:"is_correct"`
	SubmittedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"submitted_at"`
}

func (Submission) TableName() string {
	return "aohf_submission"
}
