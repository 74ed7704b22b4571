package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-identity-console/internal/utils"
)

const usersPath = "/api/v1/users"

// UserUpdate is a partial update; nil fields are left unchanged
type UserUpdate struct {
	Email     *string   `json:"email,omitempty"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Verified  *bool     `json:"verified,omitempty"`
	Blocked   *bool     `json:"blocked,omitempty"`
	RoleIDs   *[]string `json:"role_ids,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, opts ListOptions) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, usersPath, opts.values(), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, usersPath+"/"+url.PathEscape(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, user *User) (*User, error) {
	var created User
	if err := c.do(ctx, http.MethodPost, usersPath, nil, user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (*User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPatch, usersPath+"/"+url.PathEscape(id), nil, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, usersPath+"/"+url.PathEscape(id), nil, nil, nil)
}

// SetUserBlocked toggles the blocked flag on a user account
func (c *Client) SetUserBlocked(ctx context.Context, id string, blocked bool) (*User, error) {
	return c.UpdateUser(ctx, id, UserUpdate{Blocked: utils.Ptr(blocked)})
}

// SetUserVerified toggles the verified flag on a user account
func (c *Client) SetUserVerified(ctx context.Context, id string, verified bool) (*User, error) {
	return c.UpdateUser(ctx, id, UserUpdate{Verified: utils.Ptr(verified)})
}
