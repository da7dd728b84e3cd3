package ondilo

import "context"

// GetUserInfo returns the account owner's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	data, err := c.get(ctx, "/user/info", nil)
	if err != nil {
		return nil, err
	}
	return unmarshalResponse[UserInfo](data, "user info")
}

// GetUserUnits returns the account's preferred units of measurement.
func (c *Client) GetUserUnits(ctx context.Context) (*UserUnits, error) {
	data, err := c.get(ctx, "/user/units", nil)
	if err != nil {
		return nil, err
	}
	return unmarshalResponse[UserUnits](data, "user units")
}
