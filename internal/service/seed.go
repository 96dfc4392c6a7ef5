package service

import (
	"context"
	"fmt"

	"github.com/tomasgx/authbox/internal/domain"
)

type seedUser struct {
	username    string
	password    string
	name        string
	age         int
	email       string
	study       string
	civilStatus string
	avatar      string
}

var defaultUsers = []seedUser{
	{
		username: "admin", password: "admin123",
		name: "Alexandra Martinez", age: 28,
		email: "alexandra.martinez@email.com",
		study: "Computer Science - Master's Degree", civilStatus: "Single",
		avatar: "https://images.unsplash.com/photo-1494790108755-2616b9fd0d6f?w=150&h=150&fit=crop&crop=face",
	},
	{
		username: "user", password: "password",
		name: "Michael Thompson", age: 35,
		email: "michael.thompson@email.com",
		study: "Business Administration - MBA", civilStatus: "Married",
		avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
	},
	{
		username: "john", password: "john123",
		name: "John Anderson", age: 24,
		email: "john.anderson@email.com",
		study: "Mechanical Engineering - Bachelor's Degree", civilStatus: "In a Relationship",
		avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
	},
}

// SeedDefaultUsers provisions the stock demo accounts when the user
// table is empty. Idempotent: a non-empty table is left untouched.
func (s *AuthService) SeedDefaultUsers(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, seed := range defaultUsers {
		digest, err := s.hasher.Hash(seed.password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", seed.username, err)
		}
		age := seed.age
		user := &domain.User{
			Username:     seed.username,
			PasswordHash: digest,
			Name:         seed.name,
			Age:          &age,
			Email:        seed.email,
			Study:        seed.study,
			CivilStatus:  seed.civilStatus,
			Avatar:       seed.avatar,
			IsActive:     true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create seed user %s: %w", seed.username, err)
		}
	}
	return nil
}
