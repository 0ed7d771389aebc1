// file: store/memory_store_test.go
package store

import (
	"context"
	"testing"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_UserCRUDAndUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{Username: "neo", Email: "neo@x.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.Equal(t, uint32(1), u.ID)

	dupName := &models.User{Username: "neo", Email: "other@x.com", Password: "hash"}
	assert.ErrorIs(t, s.CreateUser(ctx, dupName), ErrDuplicate)
	dupMail := &models.User{Username: "other", Email: "neo@x.com", Password: "hash"}
	assert.ErrorIs(t, s.CreateUser(ctx, dupMail), ErrDuplicate)

	got, err := s.GetUserByUsername(ctx, "neo")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.Username = "trinity"
	require.NoError(t, s.UpdateUser(ctx, got))
	updated, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "trinity", updated.Username)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	_, err = s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AwardPointsUpdatesBothFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{Username: "p1", Email: "p1@x.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, u))

	require.NoError(t, s.AwardPoints(ctx, u.ID, 100))
	require.NoError(t, s.AwardPoints(ctx, u.ID, 250))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(350), got.Score)
	assert.Equal(t, uint(2), got.ChallengesSolved)

	assert.ErrorIs(t, s.AwardPoints(ctx, 999, 10), ErrNotFound)
}

func TestMemoryStore_UpdateUserDoesNotTouchScore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{Username: "p2", Email: "p2@x.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NoError(t, s.AwardPoints(ctx, u.ID, 500))

	// UpdateUser 携带过期的分数字段也不会覆盖真实分数
	stale, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	stale.Score = 0
	stale.ChallengesSolved = 0
	stale.Email = "new@x.com"
	require.NoError(t, s.UpdateUser(ctx, stale))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", got.Email)
	assert.Equal(t, uint(500), got.Score)
	assert.Equal(t, uint(1), got.ChallengesSolved)
}

func TestMemoryStore_SubmissionLedger(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ch := &models.Challenge{Title: "T", Description: "d", Points: 100, Flag: "f", Category: "web", IsActive: true}
	require.NoError(t, s.CreateChallenge(ctx, ch))

	for i, correct := range []bool{false, false, true} {
		sub := &models.Submission{UserID: 7, ChallengeID: ch.ID, Flag: "attempt", IsCorrect: correct}
		require.NoError(t, s.AppendSubmission(ctx, sub))
		assert.Equal(t, uint64(i+1), sub.ID)
	}

	solved, err := s.HasSolved(ctx, 7, ch.ID)
	require.NoError(t, err)
	assert.True(t, solved)

	solved, err = s.HasSolved(ctx, 8, ch.ID)
	require.NoError(t, err)
	assert.False(t, solved)

	subs, err := s.ListSubmissionsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	// 插入顺序
	for i := 1; i < len(subs); i++ {
		assert.Greater(t, subs[i].ID, subs[i-1].ID)
	}

	// 删除题目后台账历史保留
	require.NoError(t, s.DeleteChallenge(ctx, ch.ID))
	subs, err = s.ListSubmissionsByChallenge(ctx, ch.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 3)
}

func TestMemoryStore_SubmitLocksAndNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Submit(ctx, 123, func(tx Store, ch *models.Challenge) error {
		t.Fatal("fn must not run for a missing challenge")
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)

	ch := &models.Challenge{Title: "L", Description: "d", Points: 10, Flag: "f", Category: "misc", IsActive: true}
	require.NoError(t, s.CreateChallenge(ctx, ch))

	called := false
	err = s.Submit(ctx, ch.ID, func(tx Store, got *models.Challenge) error {
		called = true
		assert.Equal(t, ch.ID, got.ID)
		assert.Equal(t, "f", got.Flag)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestMemoryStore_ListChallengesActiveFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	active := &models.Challenge{Title: "A", Description: "d", Points: 1, Flag: "f", Category: "web", IsActive: true}
	hidden := &models.Challenge{Title: "H", Description: "d", Points: 1, Flag: "f", Category: "web", IsActive: false}
	require.NoError(t, s.CreateChallenge(ctx, active))
	require.NoError(t, s.CreateChallenge(ctx, hidden))

	all, err := s.ListChallenges(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := s.ListChallenges(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "A", visible[0].Title)
}

func TestSeed_PopulatesOnceOnly(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, Seed(ctx, s))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 6)
	assert.True(t, users[0].IsAdmin)
	assert.True(t, users[0].CheckPassword("admin"))

	challenges, err := s.ListChallenges(ctx, true)
	require.NoError(t, err)
	assert.Len(t, challenges, 5)

	// 再次 Seed 不会重复写入
	require.NoError(t, Seed(ctx, s))
	users, err = s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 6)
}
