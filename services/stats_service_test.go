// file: services/stats_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func zapNop() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func TestLeaderboard_OrderAndTieBreak(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewStatsService(st)

	admin := &models.User{Username: "admin", Email: "admin@x.com", Password: "p", IsAdmin: true}
	require.NoError(t, st.CreateUser(ctx, admin))

	// 先注册 first，再注册 second，两人同分时 first 在前
	first := &models.User{Username: "first", Email: "first@x.com", Password: "p"}
	second := &models.User{Username: "second", Email: "second@x.com", Password: "p"}
	top := &models.User{Username: "top", Email: "top@x.com", Password: "p"}
	for _, u := range []*models.User{first, second, top} {
		require.NoError(t, st.CreateUser(ctx, u))
	}
	require.NoError(t, st.AwardPoints(ctx, first.ID, 500))
	require.NoError(t, st.AwardPoints(ctx, second.ID, 500))
	require.NoError(t, st.AwardPoints(ctx, top.ID, 900))

	entries, err := svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3, "admin accounts must not appear")

	assert.Equal(t, "top", entries[0].Username)
	assert.Equal(t, "first", entries[1].Username)
	assert.Equal(t, "second", entries[2].Username)
	assert.Equal(t, uint(1), entries[0].Rank)
	assert.Equal(t, uint(3), entries[2].Rank)

	// 重复调用结果稳定
	again, err := svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, entries, again)

	// limit 生效
	limited, err := svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "top", limited[0].Username)
}

func TestCategoryProgress_TruePerCategoryTallies(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	scoring := NewScoringService(st, zapNop())
	svc := NewStatsService(st)

	user := &models.User{Username: "player", Email: "player@x.com", Password: "p"}
	require.NoError(t, st.CreateUser(ctx, user))

	mk := func(title, category, flag string, active bool) *models.Challenge {
		ch := &models.Challenge{
			Title: title, Description: "d", Difficulty: models.ChallengeDifficultyEasy,
			Points: 100, Flag: flag, Category: category, IsActive: active,
		}
		require.NoError(t, st.CreateChallenge(ctx, ch))
		return ch
	}
	web1 := mk("W1", "web", "CTF{w1}", true)
	mk("W2", "web", "CTF{w2}", true)
	mk("P1", "pwn", "CTF{p1}", true)
	mk("H1", "web", "CTF{h1}", false) // 隐藏题不计入

	_, err := scoring.SubmitFlag(ctx, user.ID, web1.ID, "CTF{w1}")
	require.NoError(t, err)

	progress, err := svc.CategoryProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, progress, 2)

	// 字典序：pwn 在 web 前
	assert.Equal(t, "pwn", progress[0].Category)
	assert.Equal(t, uint(0), progress[0].Solved)
	assert.Equal(t, uint(1), progress[0].Total)
	assert.Equal(t, float64(0), progress[0].Percentage)

	assert.Equal(t, "web", progress[1].Category)
	assert.Equal(t, uint(1), progress[1].Solved)
	assert.Equal(t, uint(2), progress[1].Total)
	assert.InDelta(t, 50.0, progress[1].Percentage, 0.001)
}

func TestCategoryProgress_NoChallenges(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewStatsService(st)

	user := &models.User{Username: "lonely", Email: "lonely@x.com", Password: "p"}
	require.NoError(t, st.CreateUser(ctx, user))

	progress, err := svc.CategoryProgress(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, progress)
}

func TestChallengeStats_FirstBloodAndCounts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewStatsService(st)

	u1 := &models.User{Username: "early", Email: "early@x.com", Password: "p"}
	u2 := &models.User{Username: "late", Email: "late@x.com", Password: "p"}
	require.NoError(t, st.CreateUser(ctx, u1))
	require.NoError(t, st.CreateUser(ctx, u2))

	ch := &models.Challenge{
		Title: "FB", Description: "d", Difficulty: models.ChallengeDifficultyHard,
		Points: 500, Flag: "CTF{fb}", Category: "pwn", IsActive: true,
	}
	require.NoError(t, st.CreateChallenge(ctx, ch))

	base := time.Now()
	record := func(userID uint32, correct bool, at time.Time) {
		require.NoError(t, st.AppendSubmission(ctx, &models.Submission{
			UserID: userID, ChallengeID: ch.ID, Flag: "x", IsCorrect: correct, SubmittedAt: at,
		}))
	}
	record(u2.ID, false, base)
	record(u1.ID, true, base.Add(time.Second))
	record(u2.ID, true, base.Add(2*time.Second))
	record(u2.ID, false, base.Add(3*time.Second))

	stats, err := svc.ChallengeStats(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), stats.SolveCount)
	assert.Equal(t, uint(4), stats.TotalSubmissions)
	assert.Equal(t, "early", stats.FirstBlood)
}

func TestChallengeStats_UnknownChallenge(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewStatsService(st)

	_, err := svc.ChallengeStats(ctx, 42)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestProgress_Summary(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	scoring := NewScoringService(st, zapNop())
	svc := NewStatsService(st)

	user := &models.User{Username: "summ", Email: "summ@x.com", Password: "p"}
	require.NoError(t, st.CreateUser(ctx, user))

	ch := &models.Challenge{
		Title: "S", Description: "d", Difficulty: models.ChallengeDifficultyEasy,
		Points: 100, Flag: "CTF{s}", Category: "misc", IsActive: true,
	}
	require.NoError(t, st.CreateChallenge(ctx, ch))

	_, err := scoring.SubmitFlag(ctx, user.ID, ch.ID, "CTF{bad}")
	require.NoError(t, err)
	_, err = scoring.SubmitFlag(ctx, user.ID, ch.ID, "CTF{s}")
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(100), progress.Score)
	assert.Equal(t, uint(1), progress.ChallengesSolved)
	assert.Equal(t, uint(2), progress.TotalSubmissions)
	assert.Equal(t, uint(1), progress.CorrectSubmissions)
	require.Len(t, progress.Categories, 1)
	assert.InDelta(t, 100.0, progress.Categories[0].Percentage, 0.001)
}
