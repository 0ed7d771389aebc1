// file: services/scoring_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"go.uber.org/zap"
)

var (
	ErrEmptyFlag         = errors.New("empty flag")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadySolved     = errors.New("challenge already solved")
)

type SubmitResult struct {
	Correct bool
	Points  uint
	Message string
}

// ScoringService 判题核心：同一 (用户, 题目) 至多加分一次。
type ScoringService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewScoringService(st store.Store, log *zap.SugaredLogger) *ScoringService {
	return &ScoringService{store: st, log: log}
}

// SubmitFlag 处理一次 Flag 提交。
// 校验顺序：空 Flag -> 题目存在且可见 -> 是否已解出 -> 判定对错。
// 判重、写台账、加分在 store.Submit 的临界区内完成，并发重复提交只会加分一次。
// 空 Flag / 题目不存在 / 已解出 均不写台账；Flag 错误是正常结果，写台账不加分。
func (s *ScoringService) SubmitFlag(ctx context.Context, userID, challengeID uint32, flag string) (*SubmitResult, error) {
	trimmed := strings.TrimSpace(flag)
	if trimmed == "" {
		return nil, ErrEmptyFlag
	}

	var result *SubmitResult
	err := s.store.Submit(ctx, challengeID, func(tx store.Store, ch *models.Challenge) error {
		if !ch.IsActive {
			return ErrChallengeNotFound
		}

		solved, err := tx.HasSolved(ctx, userID, challengeID)
		if err != nil {
			return err
		}
		if solved {
			return ErrAlreadySolved
		}

		// 两侧去除首尾空白后精确比较，大小写敏感
		correct := trimmed == strings.TrimSpace(ch.Flag)

		sub := &models.Submission{
			UserID:      userID,
			ChallengeID: challengeID,
			Flag:        flag,
			IsCorrect:   correct,
			SubmittedAt: time.Now(),
		}
		if err := tx.AppendSubmission(ctx, sub); err != nil {
			return err
		}

		if correct {
			if err := tx.AwardPoints(ctx, userID, ch.Points); err != nil {
				return err
			}
			result = &SubmitResult{Correct: true, Points: ch.Points, Message: "Correct flag! Points awarded."}
		} else {
			result = &SubmitResult{Correct: false, Message: "Incorrect flag. Try again!"}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	if result.Correct {
		s.log.Infow("challenge solved", "user_id", userID, "challenge_id", challengeID, "points", result.Points)
	}
	return result, nil
}
