package portal

import (
	"context"
	"net/http"

	"github.com/trainhub/trainhub/internal/domain/session"
)

// Login exchanges credentials for a bearer token. The token is returned
// to the caller and is NOT attached to the client; session commitment
// is the account gateway's job.
func (c *Client) Login(ctx context.Context, userID, password string) (string, error) {
	var resp loginResponse
	err := c.doRequest(ctx, http.MethodPost, "account/login",
		loginRequest{UserID: userID, Password: password}, &resp, "")
	if err != nil {
		return "", err
	}
	return resp.UserToken, nil
}

// Me fetches the profile for an explicit bearer token. It takes the
// token as an argument rather than using the client's token source so
// the gateway can probe a freshly issued token before the session store
// has committed it. Implements session.ProfileSource.
func (c *Client) Me(ctx context.Context, token string) (*session.Profile, error) {
	var profile session.Profile
	if err := c.doRequest(ctx, http.MethodGet, "account/me", nil, &profile, token); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Register submits a new account registration. A non-2xx response comes
// back as *APIError carrying the server's message verbatim.
func (c *Client) Register(ctx context.Context, userID, password, nickname string, trainingID int64) error {
	return c.doRequest(ctx, http.MethodPost, "account/register", registerRequest{
		UserID:     userID,
		Password:   password,
		Nickname:   nickname,
		TrainingID: trainingID,
	}, nil, "")
}
