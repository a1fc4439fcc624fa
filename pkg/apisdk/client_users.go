package apisdk

import (
	"context"
	"net/http"
	"net/url"
)

// Test calls the connectivity endpoint.
func (c *SDKClient) Test(ctx context.Context) (*TestResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/test", nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var out TestResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new account.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if c.ValidateRequests {
		if details := req.Validate(); details != nil {
			return nil, NewValidationError("invalid user", details)
		}
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/create-user", req, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserByID looks an account up by id.
func (c *SDKClient) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	return c.getUser(ctx, url.Values{"id": {id}})
}

// GetUserByEmail looks an account up by email. The server normalizes the
// domain part, so "a@EXAMPLE.org" finds "a@example.org".
func (c *SDKClient) GetUserByEmail(ctx context.Context, email string) (*UserResponse, error) {
	return c.getUser(ctx, url.Values{"email": {email}})
}

func (c *SDKClient) getUser(ctx context.Context, q url.Values) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/get-user?"+q.Encode(), nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
