package api

import (
	"context"
	"errors"
	"net/http"

	"storefront-client/internal/profile"
)

var ErrEmptyProfile = errors.New("profile response has no data")

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/user/user-logout"}, nil)
}

func (c *Client) GetProfile(ctx context.Context) (profile.Profile, error) {
	var env profileEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/profile/user-profile"}, &env); err != nil {
		return profile.Profile{}, err
	}
	if env.Data == nil {
		return profile.Profile{}, ErrEmptyProfile
	}
	return mapProfile(*env.Data), nil
}
