package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"achievediary/internal/achievement"
)

// DefaultPageSize is used when a ListQuery leaves Size unset.
const DefaultPageSize = 10

// ListQuery selects a page of a user's achievements.
type ListQuery struct {
	UserID   int64
	Category string // achievement.FilterAll or "" means no filter
	Page     int    // zero-based
	Size     int
}

// Values encodes q as query parameters. The category parameter is omitted
// entirely for the "all" filter; any other value is sent unmodified.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("userId", strconv.FormatInt(q.UserID, 10))
	if q.Category != "" && q.Category != achievement.FilterAll {
		v.Set("category", q.Category)
	}
	page := q.Page
	if page < 0 {
		page = 0
	}
	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	return v
}

// Page is one page of achievements as reported by the server.
type Page struct {
	Content       []achievement.Achievement `json:"content"`
	TotalPages    int                       `json:"totalPages"`
	TotalElements int                       `json:"totalElements"`
}

// Empty reports whether the page holds no records.
func (p *Page) Empty() bool {
	return p == nil || len(p.Content) == 0
}

// achievementBody is the create/update payload. The id is never sent and
// user_id only scopes the write; the server does not accept ownership
// changes.
type achievementBody struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
}

func newAchievementBody(userID int64, f achievement.Fields) achievementBody {
	f = f.Normalize()
	return achievementBody{
		Title:       f.Title,
		Category:    string(f.Category),
		Date:        f.Date,
		Description: f.Description,
		UserID:      userID,
	}
}

func requireUser(userID int64) error {
	if userID <= 0 {
		return MissingInput("user id")
	}
	return nil
}

func userQuery(userID int64) url.Values {
	return url.Values{"userId": {strconv.FormatInt(userID, 10)}}
}

func achievementPath(id int64) string {
	return fmt.Sprintf("/api/achievements/%d", id)
}

// ListAchievements fetches one page of achievements.
func (c *Client) ListAchievements(ctx context.Context, q ListQuery) (*Page, error) {
	if err := requireUser(q.UserID); err != nil {
		return nil, err
	}
	req := request{
		method: http.MethodGet,
		path:   "/api/achievements",
		query:  q.Values(),
		schema: schemaPage,
		userID: strconv.FormatInt(q.UserID, 10),
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	page := &Page{}
	if err := decode(req.op(), data, page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []achievement.Achievement{}
	}
	return page, nil
}

// GetAchievement fetches one achievement owned by userID.
func (c *Client) GetAchievement(ctx context.Context, id, userID int64) (*achievement.Achievement, error) {
	if id <= 0 {
		return nil, MissingInput("achievement id")
	}
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	req := request{
		method: http.MethodGet,
		path:   achievementPath(id),
		query:  userQuery(userID),
		schema: schemaAchievement,
		userID: strconv.FormatInt(userID, 10),
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	var a achievement.Achievement
	if err := decode(req.op(), data, &a); err != nil {
		return nil, err
	}
	if a.ID == 0 {
		return nil, &Error{Kind: KindNotFound, Op: req.op(), Err: fmt.Errorf("empty response")}
	}
	return &a, nil
}

// CreateAchievement creates a record for userID. The returned achievement is
// nil when the server acknowledges without a body.
func (c *Client) CreateAchievement(ctx context.Context, userID int64, f achievement.Fields) (*achievement.Achievement, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	req := request{
		method: http.MethodPost,
		path:   "/api/achievements",
		body:   newAchievementBody(userID, f),
		schema: schemaAchievement,
		userID: strconv.FormatInt(userID, 10),
	}
	return c.writeAchievement(ctx, req)
}

// UpdateAchievement replaces the editable fields of achievement id.
func (c *Client) UpdateAchievement(ctx context.Context, id, userID int64, f achievement.Fields) (*achievement.Achievement, error) {
	if id <= 0 {
		return nil, MissingInput("achievement id")
	}
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	req := request{
		method: http.MethodPatch,
		path:   achievementPath(id),
		body:   newAchievementBody(userID, f),
		schema: schemaAchievement,
		userID: strconv.FormatInt(userID, 10),
	}
	return c.writeAchievement(ctx, req)
}

func (c *Client) writeAchievement(ctx context.Context, req request) (*achievement.Achievement, error) {
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	var a achievement.Achievement
	if err := decode(req.op(), data, &a); err != nil {
		return nil, err
	}
	if a.ID == 0 {
		return nil, nil
	}
	return &a, nil
}

// DeleteAchievement removes achievement id. The server enforces that it
// belongs to userID.
func (c *Client) DeleteAchievement(ctx context.Context, id, userID int64) error {
	if id <= 0 {
		return MissingInput("achievement id")
	}
	if err := requireUser(userID); err != nil {
		return err
	}
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   achievementPath(id),
		query:  userQuery(userID),
		userID: strconv.FormatInt(userID, 10),
	})
	return err
}
