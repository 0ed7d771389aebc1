// file: services/stats_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/dto"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
)

// StatsService 聚合读模型：排行榜、分类进度、单题统计。
// 全部按需从台账和用户/题目表重算，不落库。
type StatsService struct {
	store store.Store
}

func NewStatsService(st store.Store) *StatsService {
	return &StatsService{store: st}
}

// Leaderboard 排行榜：排除管理员，按分数降序，同分按注册先后（ID 升序）保证稳定
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntryResp, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	players := users[:0]
	for _, u := range users {
		if !u.IsAdmin {
			players = append(players, u)
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].ID < players[j].ID
	})
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}

	entries := make([]dto.LeaderboardEntryResp, 0, len(players))
	for i, u := range players {
		entries = append(entries, dto.LeaderboardEntryResp{
			Rank:             uint(i + 1),
			ID:               u.ID,
			Username:         u.Username,
			Score:            u.Score,
			ChallengesSolved: u.ChallengesSolved,
		})
	}
	return entries, nil
}

// CategoryProgress 按分类统计某用户的解题进度（只统计当前可见题目）。
// 分类内题目数为 0 时百分比为 0，不产生除零。
func (s *StatsService) CategoryProgress(ctx context.Context, userID uint32) ([]dto.CategoryProgressResp, error) {
	challenges, err := s.store.ListChallenges(ctx, true)
	if err != nil {
		return nil, err
	}
	subs, err := s.store.ListSubmissionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	solvedSet := make(map[uint32]bool)
	for _, sub := range subs {
		if sub.IsCorrect {
			solvedSet[sub.ChallengeID] = true
		}
	}

	type tally struct{ solved, total uint }
	byCategory := make(map[string]*tally)
	for _, ch := range challenges {
		t, ok := byCategory[ch.Category]
		if !ok {
			t = &tally{}
			byCategory[ch.Category] = t
		}
		t.total++
		if solvedSet[ch.ID] {
			t.solved++
		}
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	result := make([]dto.CategoryProgressResp, 0, len(categories))
	for _, c := range categories {
		t := byCategory[c]
		var pct float64
		if t.total > 0 {
			pct = float64(t.solved) / float64(t.total) * 100
		}
		result = append(result, dto.CategoryProgressResp{
			Category:   c,
			Solved:     t.solved,
			Total:      t.total,
			Percentage: pct,
		})
	}
	return result, nil
}

// Progress 个人进度汇总（分数、解题数、提交统计、分类进度）
func (s *StatsService) Progress(ctx context.Context, userID uint32) (*dto.ProgressResp, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	subs, err := s.store.ListSubmissionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	var correct uint
	for _, sub := range subs {
		if sub.IsCorrect {
			correct++
		}
	}
	return &dto.ProgressResp{
		Score:              user.Score,
		ChallengesSolved:   user.ChallengesSolved,
		TotalSubmissions:   uint(len(subs)),
		CorrectSubmissions: correct,
		Categories:         categories,
	}, nil
}

// ChallengeStats 单题统计：解出人数、一血、提交总数。
// 一血取最早的正确提交，时间相同按台账先后。
func (s *StatsService) ChallengeStats(ctx context.Context, challengeID uint32) (*dto.ChallengeStatsResp, error) {
	if _, err := s.store.GetChallenge(ctx, challengeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	subs, err := s.store.ListSubmissionsByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	solvers := make(map[uint32]bool)
	var firstBloodUserID uint32
	var firstBloodAt time.Time
	found := false
	for _, sub := range subs {
		if !sub.IsCorrect {
			continue
		}
		solvers[sub.UserID] = true
		// 台账按插入顺序返回，时间相同时先入账者保持一血
		if !found || sub.SubmittedAt.Before(firstBloodAt) {
			firstBloodUserID = sub.UserID
			firstBloodAt = sub.SubmittedAt
			found = true
		}
	}

	stats := &dto.ChallengeStatsResp{
		ChallengeID:      challengeID,
		SolveCount:       uint(len(solvers)),
		TotalSubmissions: uint(len(subs)),
	}
	if found {
		if u, err := s.store.GetUser(ctx, firstBloodUserID); err == nil {
			stats.FirstBlood = u.Username
		}
	}
	return stats, nil
}
