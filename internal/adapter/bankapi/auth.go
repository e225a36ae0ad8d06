package bankapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthToken obtains a bearer token from /authToken?claim={claim}. The
// response may carry the token under "token" or "access_token". Callers
// are expected to proceed without a token when this fails.
func (c *Client) AuthToken(ctx context.Context, username, password, claim string) (string, error) {
	payload, err := json.Marshal(credentialsPayload{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}

	endpoint := c.baseURL + "/authToken?claim=" + url.QueryEscape(claim)

	resp, err := c.do(ctx, opAuthToken, http.MethodPost, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("obtain auth token: %w", err)
	}

	if resp.status < 200 || resp.status > 299 {
		return "", fmt.Errorf("%w: auth token request returned %d", domain.ErrUnexpectedStatus, resp.status)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	for _, key := range []string{"token", "access_token"} {
		if token, ok := body[key].(string); ok && token != "" {
			c.logger.Info().Str("username", username).Msg("obtained auth token")
			return token, nil
		}
	}

	return "", fmt.Errorf("%w: fields checked: token, access_token", domain.ErrNoToken)
}
