// file: store/store.go
package store

import (
	"context"
	"errors"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// SubmitFunc 在提交临界区内执行，tx 为事务作用域的 Store，ch 为已锁定的题目行。
type SubmitFunc func(tx Store, ch *models.Challenge) error

// Store 统一的数据访问接口。MySQL 实现见 GormStore，内存实现见 MemoryStore，
// 通过 DB_DRIVER 配置切换。
type Store interface {
	// ---- 用户 ----
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint32) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint32) error
	ListUsers(ctx context.Context) ([]models.User, error)
	// AwardPoints 同时累加 score 和 challenges_solved，两者要么都生效要么都不生效
	AwardPoints(ctx context.Context, userID uint32, points uint) error

	// ---- 题目 ----
	CreateChallenge(ctx context.Context, ch *models.Challenge) error
	GetChallenge(ctx context.Context, id uint32) (*models.Challenge, error)
	UpdateChallenge(ctx context.Context, ch *models.Challenge) error
	DeleteChallenge(ctx context.Context, id uint32) error
	ListChallenges(ctx context.Context, activeOnly bool) ([]models.Challenge, error)

	// ---- 提交台账（只追加） ----
	AppendSubmission(ctx context.Context, s *models.Submission) error
	HasSolved(ctx context.Context, userID, challengeID uint32) (bool, error)
	ListSubmissionsByUser(ctx context.Context, userID uint32) ([]models.Submission, error)
	ListSubmissionsByChallenge(ctx context.Context, challengeID uint32) ([]models.Submission, error)

	// Submit 持有 challengeID 对应的提交临界区执行 fn：
	// "查重 -> 写台账 -> 加分" 必须在同一临界区内完成，防止并发重复加分。
	// 题目不存在时返回 ErrNotFound，fn 不会被调用。
	Submit(ctx context.Context, challengeID uint32, fn SubmitFunc) error
}
