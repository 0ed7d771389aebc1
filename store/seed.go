// file: store/seed.go
package store

import (
	"context"

	"github.com/Nikesh-Uprety/AOHF-ROOT/models"
)

// Seed 向空库写入演示数据（内存模式默认调用，MySQL 模式可通过 SEED_DATA=1 开启）。
// 已存在用户时不做任何事。
func Seed(ctx context.Context, s Store) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	adminPass, err := models.HashPassword("admin")
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:        "admin",
		Email:           "admin@gmail.com",
		Password:        adminPass,
		IsAdmin:         true,
		IsEmailVerified: true,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return err
	}

	samplePass, err := models.HashPassword("password123")
	if err != nil {
		return err
	}
	sampleUsers := []models.User{
		{Username: "DarkGambler", Email: "darkgambler@example.com"},
		{Username: "CyberNinja", Email: "cyberninja@example.com"},
		{Username: "BugHunter", Email: "bughunter@example.com"},
		{Username: "ShellMaster", Email: "shellmaster@example.com"},
		{Username: "CryptoKing", Email: "cryptoking@example.com"},
	}
	for i := range sampleUsers {
		sampleUsers[i].Password = samplePass
		sampleUsers[i].IsEmailVerified = true
		if err := s.CreateUser(ctx, &sampleUsers[i]); err != nil {
			return err
		}
	}

	sampleChallenges := []models.Challenge{
		{
			Title:       "Space",
			Description: "Find the hidden message in this space-themed challenge.",
			Difficulty:  models.ChallengeDifficultyEasy,
			Points:      100,
			Flag:        "CTF{sp4c3_1s_c00l}",
			Category:    "misc",
			IsActive:    true,
		},
		{
			Title:       "Buffer Overflow",
			Description: "Exploit this simple buffer overflow vulnerability.",
			Difficulty:  models.ChallengeDifficultyMedium,
			Points:      250,
			Flag:        "CTF{buff3r_0v3rfl0w_m4st3r}",
			Category:    "pwn",
			IsActive:    true,
		},
		{
			Title:       "SQL Injection",
			Description: "Can you bypass the login using SQL injection?",
			Difficulty:  models.ChallengeDifficultyMedium,
			Points:      200,
			Flag:        "CTF{sql_1nj3ct10n_k1ng}",
			Category:    "web",
			IsActive:    true,
		},
		{
			Title:       "Reverse Engineering",
			Description: "Reverse this binary to find the flag.",
			Difficulty:  models.ChallengeDifficultyHard,
			Points:      500,
			Flag:        "CTF{r3v3rs3_3ng1n33r1ng_pr0}",
			Category:    "rev",
			IsActive:    true,
		},
		{
			Title:       "Cryptography",
			Description: "Decrypt this message to reveal the flag.",
			Difficulty:  models.ChallengeDifficultyHard,
			Points:      400,
			Flag:        "CTF{cry0t0_m4st3r_h4ck3r}",
			Category:    "crypto",
			IsActive:    true,
		},
	}
	for i := range sampleChallenges {
		if err := s.CreateChallenge(ctx, &sampleChallenges[i]); err != nil {
			return err
		}
	}
	return nil
}
