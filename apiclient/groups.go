package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

const groupsPath = "/api/v1/groups"

func (c *Client) ListGroups(ctx context.Context, opts ListOptions) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodGet, groupsPath, opts.values(), nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) GetGroup(ctx context.Context, id string) (*Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodGet, groupsPath+"/"+url.PathEscape(id), nil, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) CreateGroup(ctx context.Context, group *Group) (*Group, error) {
	var created Group
	if err := c.do(ctx, http.MethodPost, groupsPath, nil, group, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGroup(ctx context.Context, group *Group) (*Group, error) {
	var updated Group
	if err := c.do(ctx, http.MethodPut, groupsPath+"/"+url.PathEscape(group.ID), nil, group, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, groupsPath+"/"+url.PathEscape(id), nil, nil, nil)
}

// AddGroupMember adds a user to a group
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID string) error {
	member := struct {
		UserID string `json:"user_id"`
	}{UserID: userID}
	return c.do(ctx, http.MethodPost, groupsPath+"/"+url.PathEscape(groupID)+"/members", nil, member, nil)
}

// RemoveGroupMember removes a user from a group
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	path := groupsPath + "/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
