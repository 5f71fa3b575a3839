package api

import (
	"context"

	"achievediary/internal/achievement"
	"achievediary/internal/identity"
)

// Service is the backend surface the panels and commands depend on.
// *Client implements it; tests substitute fakes.
type Service interface {
	ListAchievements(ctx context.Context, q ListQuery) (*Page, error)
	GetAchievement(ctx context.Context, id, userID int64) (*achievement.Achievement, error)
	CreateAchievement(ctx context.Context, userID int64, f achievement.Fields) (*achievement.Achievement, error)
	UpdateAchievement(ctx context.Context, id, userID int64, f achievement.Fields) (*achievement.Achievement, error)
	DeleteAchievement(ctx context.Context, id, userID int64) error

	ListAwards(ctx context.Context, userID int64) ([]Award, error)
	AwardStats(ctx context.Context, userID int64) (*Stats, error)
	Level(ctx context.Context, userID int64) (int, error)

	UpsertUser(ctx context.Context, id *identity.Identity) error
	UserExists(ctx context.Context, userID int64) (bool, error)
}

var _ Service = (*Client)(nil)
