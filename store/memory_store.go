// file: store/memory_store.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
)

// MemoryStore 纯内存实现，零依赖，可用于本地开发和测试（DB_DRIVER=memory）。
// 原子性保证：mu 保护所有表，submitMu 按题目串行化提交临界区。
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[uint32]*models.User
	challenges  map[uint32]*models.Challenge
	submissions []*models.Submission

	nextUserID       uint32
	nextChallengeID  uint32
	nextSubmissionID uint64

	lockMu   sync.Mutex
	submitMu map[uint32]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:            make(map[uint32]*models.User),
		challenges:       make(map[uint32]*models.Challenge),
		nextUserID:       1,
		nextChallengeID:  1,
		nextSubmissionID: 1,
		submitMu:         make(map[uint32]*sync.Mutex),
	}
}

func (s *MemoryStore) challengeLock(id uint32) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	if m, ok := s.submitMu[id]; ok {
		return m
	}
	m := &sync.Mutex{}
	s.submitMu[id] = m
	return m
}

// ---- 用户 ----

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, exist := range s.users {
		if exist.Username == u.Username || exist.Email == u.Email {
			return ErrDuplicate
		}
	}
	u.ID = s.nextUserID
	s.nextUserID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uint32) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exist, ok := s.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range s.users {
		if id != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return ErrDuplicate
		}
	}
	// 分数字段只能经由 AwardPoints 变更
	exist.Username = u.Username
	exist.Email = u.Email
	exist.Password = u.Password
	exist.IsAdmin = u.IsAdmin
	exist.IsEmailVerified = u.IsEmailVerified
	exist.EmailVerificationToken = u.EmailVerificationToken
	exist.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryStore) AwardPoints(ctx context.Context, userID uint32, points uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Score += points
	u.ChallengesSolved++
	u.UpdatedAt = time.Now()
	return nil
}

// ---- 题目 ----

func (s *MemoryStore) CreateChallenge(ctx context.Context, ch *models.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch.ID = s.nextChallengeID
	s.nextChallengeID++
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now()
	}
	ch.UpdatedAt = ch.CreatedAt
	cp := *ch
	s.challenges[ch.ID] = &cp
	return nil
}

func (s *MemoryStore) GetChallenge(ctx context.Context, id uint32) (*models.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.challenges[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (s *MemoryStore) UpdateChallenge(ctx context.Context, ch *models.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[ch.ID]; !ok {
		return ErrNotFound
	}
	cp := *ch
	cp.UpdatedAt = time.Now()
	s.challenges[ch.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteChallenge(ctx context.Context, id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[id]; !ok {
		return ErrNotFound
	}
	// 台账中引用该题目的历史提交保留
	delete(s.challenges, id)
	return nil
}

func (s *MemoryStore) ListChallenges(ctx context.Context, activeOnly bool) ([]models.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenges := make([]models.Challenge, 0, len(s.challenges))
	for _, ch := range s.challenges {
		if activeOnly && !ch.IsActive {
			continue
		}
		challenges = append(challenges, *ch)
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].ID < challenges[j].ID })
	return challenges, nil
}

// ---- 提交台账 ----

func (s *MemoryStore) AppendSubmission(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = s.nextSubmissionID
	s.nextSubmissionID++
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	cp := *sub
	s.submissions = append(s.submissions, &cp)
	return nil
}

func (s *MemoryStore) HasSolved(ctx context.Context, userID, challengeID uint32) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.submissions {
		if sub.UserID == userID && sub.ChallengeID == challengeID && sub.IsCorrect {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListSubmissionsByUser(ctx context.Context, userID uint32) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subs []models.Submission
	for _, sub := range s.submissions {
		if sub.UserID == userID {
			subs = append(subs, *sub)
		}
	}
	return subs, nil
}

func (s *MemoryStore) ListSubmissionsByChallenge(ctx context.Context, challengeID uint32) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subs []models.Submission
	for _, sub := range s.submissions {
		if sub.ChallengeID == challengeID {
			subs = append(subs, *sub)
		}
	}
	return subs, nil
}

// Submit 按题目加互斥锁后执行 fn，与 GormStore 的行锁语义对齐
func (s *MemoryStore) Submit(ctx context.Context, challengeID uint32, fn SubmitFunc) error {
	lock := s.challengeLock(challengeID)
	lock.Lock()
	defer lock.Unlock()

	ch, err := s.GetChallenge(ctx, challengeID)
	if err != nil {
		return err
	}
	return fn(s, ch)
}
