package shopapi

import (
	"context"
	"strconv"
)

// Login exchanges credentials for a session token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "login", "auth/login/", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.post(ctx, "register", "auth/register/", input, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "get_profile", "users/me/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile PATCHes the authenticated profile.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var user User
	if err := c.patch(ctx, "update_profile", "users/me/", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAddresses fetches the user's saved addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := c.getList(ctx, "list_addresses", "addresses/", &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress saves a new address.
func (c *Client) CreateAddress(ctx context.Context, input Address) (*Address, error) {
	var address Address
	if err := c.post(ctx, "create_address", "addresses/", input, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress PATCHes an existing address.
func (c *Client) UpdateAddress(ctx context.Context, id int64, input Address) (*Address, error) {
	var address Address
	if err := c.patch(ctx, "update_address", addressPath(id), input, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.delete(ctx, "delete_address", addressPath(id))
}

func addressPath(id int64) string {
	return "addresses/" + strconv.FormatInt(id, 10) + "/"
}
