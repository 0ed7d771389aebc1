// file: store/gorm_store.go
package store

import (
	"context"
	"errors"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于 GORM/MySQL 的 Store 实现
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate 建表（users / challenges / submissions）
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.Challenge{}, &models.Submission{})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// ---- 用户 ----

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *GormStore) GetUser(ctx context.Context, id uint32) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email_verification_token = ?", token).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, u *models.User) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).
		Select("username", "email", "password", "is_admin", "is_email_verified", "email_verification_token").
		Updates(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint32) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// AwardPoints 用单条 UPDATE 同时累加分数和解题数，保证两个字段的原子性
func (s *GormStore) AwardPoints(ctx context.Context, userID uint32, points uint) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"score":             gorm.Expr("score + ?", points),
			"challenges_solved": gorm.Expr("challenges_solved + ?", 1),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- 题目 ----

func (s *GormStore) CreateChallenge(ctx context.Context, ch *models.Challenge) error {
	return translate(s.db.WithContext(ctx).Create(ch).Error)
}

func (s *GormStore) GetChallenge(ctx context.Context, id uint32) (*models.Challenge, error) {
	var ch models.Challenge
	if err := s.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ch, nil
}

func (s *GormStore) UpdateChallenge(ctx context.Context, ch *models.Challenge) error {
	res := s.db.WithContext(ctx).Model(&models.Challenge{}).Where("id = ?", ch.ID).
		Select("title", "description", "difficulty", "points", "flag", "category",
			"attachment", "author", "download_url", "challenge_site_url", "is_active").
		Updates(ch)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChallenge 物理删除题目行；提交台账中的历史记录保留
func (s *GormStore) DeleteChallenge(ctx context.Context, id uint32) error {
	res := s.db.WithContext(ctx).Delete(&models.Challenge{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListChallenges(ctx context.Context, activeOnly bool) ([]models.Challenge, error) {
	db := s.db.WithContext(ctx).Order("id asc")
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	var challenges []models.Challenge
	if err := db.Find(&challenges).Error; err != nil {
		return nil, translate(err)
	}
	return challenges, nil
}

// ---- 提交台账 ----

func (s *GormStore) AppendSubmission(ctx context.Context, sub *models.Submission) error {
	return translate(s.db.WithContext(ctx).Create(sub).Error)
}

func (s *GormStore) HasSolved(ctx context.Context, userID, challengeID uint32) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ? AND is_correct = ?", userID, challengeID, true).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *GormStore) ListSubmissionsByUser(ctx context.Context, userID uint32) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&subs).Error
	if err != nil {
		return nil, translate(err)
	}
	return subs, nil
}

func (s *GormStore) ListSubmissionsByChallenge(ctx context.Context, challengeID uint32) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.WithContext(ctx).Where("challenge_id = ?", challengeID).Order("id asc").Find(&subs).Error
	if err != nil {
		return nil, translate(err)
	}
	return subs, nil
}

// Submit 在事务中对题目行加 FOR UPDATE 锁后执行 fn，
// 同一题目的并发提交在此串行化
func (s *GormStore) Submit(ctx context.Context, challengeID uint32, fn SubmitFunc) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		var ch models.Challenge
		if err := txdb.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ch, challengeID).Error; err != nil {
			return translate(err)
		}
		return fn(&GormStore{db: txdb}, &ch)
	})
}
