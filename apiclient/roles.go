package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

const rolesPath = "/api/v1/roles"

func (c *Client) ListRoles(ctx context.Context, opts ListOptions) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, rolesPath, opts.values(), nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) GetRole(ctx context.Context, id string) (*Role, error) {
	var role Role
	if err := c.do(ctx, http.MethodGet, rolesPath+"/"+url.PathEscape(id), nil, nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) CreateRole(ctx context.Context, role *Role) (*Role, error) {
	var created Role
	if err := c.do(ctx, http.MethodPost, rolesPath, nil, role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateRole(ctx context.Context, role *Role) (*Role, error) {
	var updated Role
	if err := c.do(ctx, http.MethodPut, rolesPath+"/"+url.PathEscape(role.ID), nil, role, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, rolesPath+"/"+url.PathEscape(id), nil, nil, nil)
}
