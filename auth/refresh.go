package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront-client/apperrors"
	"storefront-client/models"
)

// ErrNoRefreshToken means no refresh credential is stored; the session cannot
// be renewed.
var ErrNoRefreshToken = fmt.Errorf("no refresh token available")

// RefreshTokens exchanges the stored refresh token for a new access token and
// persists the result. The caller must pass a client that does not route back
// through the authenticated transport, or a rejected refresh would recurse.
// Returns the new access token.
func RefreshTokens(ctx context.Context, client *http.Client, baseURL string, tokens *TokenStore) (string, error) {
	refreshToken := tokens.RefreshToken(ctx)
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	endpoint := baseURL + "/Auth/RefreshToken?token=" + url.QueryEscape(refreshToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.FromStatus(resp.StatusCode, "token refresh rejected")
	}

	var payload models.Response[models.TokenPair]
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	// A success envelope with no access token is still a failed refresh.
	if payload.Data.AccessToken == "" {
		return "", fmt.Errorf("no access token in refresh response")
	}

	if err := tokens.SaveTokens(ctx, payload.Data.AccessToken, payload.Data.RefreshToken); err != nil {
		return "", fmt.Errorf("store refreshed tokens: %w", err)
	}
	return payload.Data.AccessToken, nil
}
