package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"achievediary/internal/identity"
)

// userBody is the registration payload. Empty city and avatar are sent as
// null.
type userBody struct {
	VKID      int64   `json:"vkId"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	City      *string `json:"city"`
	Avatar    *string `json:"avatar"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// UpsertUser registers or refreshes the platform user on the backend.
func (c *Client) UpsertUser(ctx context.Context, id *identity.Identity) error {
	if id == nil || id.ID <= 0 {
		return MissingInput("user id")
	}
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/vk-user",
		body: userBody{
			VKID:      id.ID,
			FirstName: id.FirstName,
			LastName:  id.LastName,
			City:      optional(id.City),
			Avatar:    optional(id.Avatar),
		},
		userID: id.UserID(),
	})
	return err
}

type existsBody struct {
	Exists bool `json:"exists"`
}

// UserExists asks whether the backend knows userID.
func (c *Client) UserExists(ctx context.Context, userID int64) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	req := request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/auth/vk-user/%d/exists", userID),
		schema: schemaExists,
		userID: strconv.FormatInt(userID, 10),
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	var body existsBody
	if err := decode(req.op(), data, &body); err != nil {
		return false, err
	}
	return body.Exists, nil
}
