package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

const organizationsPath = "/api/v1/organizations"

func (c *Client) ListOrganizations(ctx context.Context, opts ListOptions) ([]Organization, error) {
	var orgs []Organization
	if err := c.do(ctx, http.MethodGet, organizationsPath, opts.values(), nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	if err := c.do(ctx, http.MethodGet, organizationsPath+"/"+url.PathEscape(id), nil, nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (c *Client) CreateOrganization(ctx context.Context, org *Organization) (*Organization, error) {
	var created Organization
	if err := c.do(ctx, http.MethodPost, organizationsPath, nil, org, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateOrganization(ctx context.Context, org *Organization) (*Organization, error) {
	var updated Organization
	if err := c.do(ctx, http.MethodPut, organizationsPath+"/"+url.PathEscape(org.ID), nil, org, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, organizationsPath+"/"+url.PathEscape(id), nil, nil, nil)
}
