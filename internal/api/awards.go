package api

import (
	"context"
	"net/http"
	"strconv"

	"achievediary/internal/achievement"

	"golang.org/x/sync/errgroup"
)

// Level bounds.
const (
	MinLevel = 1
	MaxLevel = 10
)

// Award is a server-derived reward.
type Award struct {
	Title    string               `json:"title"`
	Category achievement.Category `json:"category"`
	Date     string               `json:"date"`
}

// Stats summarizes a user's achievements.
type Stats struct {
	AchievementsCount  int                  `json:"achievementsCount"`
	MostActiveCategory achievement.Category `json:"mostActiveCategory"`
	AwardsCount        int                  `json:"awardsCount"`
}

type levelBody struct {
	Level *int `json:"level"`
}

// ClampLevel maps a server level into [MinLevel, MaxLevel]. A missing or
// zero level is shown as the first level.
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// ListAwards fetches the user's awards.
func (c *Client) ListAwards(ctx context.Context, userID int64) ([]Award, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	req := request{
		method: http.MethodGet,
		path:   "/api/awards",
		query:  userQuery(userID),
		schema: schemaAwards,
		userID: strconv.FormatInt(userID, 10),
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	var awards []Award
	if err := decode(req.op(), data, &awards); err != nil {
		return nil, err
	}
	if awards == nil {
		awards = []Award{}
	}
	return awards, nil
}

// AwardStats fetches aggregate counts for the user.
func (c *Client) AwardStats(ctx context.Context, userID int64) (*Stats, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	req := request{
		method: http.MethodGet,
		path:   "/api/awards/stats",
		query:  userQuery(userID),
		schema: schemaStats,
		userID: strconv.FormatInt(userID, 10),
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	stats := &Stats{}
	if err := decode(req.op(), data, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Level fetches the user's level, clamped to [MinLevel, MaxLevel].
func (c *Client) Level(ctx context.Context, userID int64) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	req := request{
		method: http.MethodGet,
		path:   "/api/awards/level",
		query:  userQuery(userID),
		schema: schemaLevel,
		userID: strconv.FormatInt(userID, 10),
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	var body levelBody
	if err := decode(req.op(), data, &body); err != nil {
		return 0, err
	}
	if body.Level == nil {
		return MinLevel, nil
	}
	return ClampLevel(*body.Level), nil
}

// Progress is everything the awards panel shows.
type Progress struct {
	Awards []Award
	Stats  Stats
	Level  int
}

// LoadProgress fetches awards, stats and level concurrently. The first
// failure cancels the others and is returned.
func LoadProgress(ctx context.Context, svc Service, userID int64) (*Progress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		p     Progress
		stats *Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		awards, err := svc.ListAwards(gctx, userID)
		p.Awards = awards
		return err
	})
	g.Go(func() error {
		s, err := svc.AwardStats(gctx, userID)
		stats = s
		return err
	})
	g.Go(func() error {
		level, err := svc.Level(gctx, userID)
		p.Level = level
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats != nil {
		p.Stats = *stats
	}
	if p.Awards == nil {
		p.Awards = []Award{}
	}
	p.Level = ClampLevel(p.Level)
	return &p, nil
}
