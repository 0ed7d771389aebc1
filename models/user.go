// file: models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
	"time"
)

type User struct {
	ID                     uint32    `gorm:"primarykey" json:"id"`
	Username               string    `gorm:"size:50;unique;not null" json:"username"`
	Email                  string    `gorm:"size:100;unique;not null" json:"email"`
	Password               string    `gorm:"size:255;not null" json:"-"`
	IsAdmin                bool      `gorm:"default:0" json:"is_admin"`
	Score                  uint      `gorm:"default:0" json:"score"`
	ChallengesSolved       uint      `gorm:"default:0" json:"challenges_solved"`
	IsEmailVerified        bool      `gorm:"default:0" json:"is_email_verified"`
	EmailVerificationToken *string   `gorm:"size:100" json:"-"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "aohf_user"
}

// HashPassword 生成 bcrypt 哈希，存库前由调用方显式调用
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验密码是否正确
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
