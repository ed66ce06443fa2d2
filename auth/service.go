package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"storefront-client/apperrors"
	"storefront-client/models"
)

// Service maps the backend's auth endpoints and keeps the local session in
// sync with their results.
type Service struct {
	client  *http.Client
	refresh *http.Client // plain client, bypasses the authenticated transport
	baseURL string
	tokens  *TokenStore
	logger  *zap.Logger
}

func NewService(client *http.Client, baseURL string, tokens *TokenStore, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		refresh: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// Login authenticates against POST /Auth, derives the user profile from the
// access token claims and persists the session.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload, err := s.post(ctx, "/Auth", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !payload.Success || payload.Data.AccessToken == "" {
		return nil, apperrors.New(http.StatusUnauthorized, messageOr(payload.Message, "Login failed"), nil)
	}

	user, err := UserFromToken(payload.Data.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("extract user from token: %w", err)
	}
	if err := s.tokens.SaveSession(ctx, payload.Data, user); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return user, nil
}

// Register creates an account via POST /Auth/Register. It does not log the
// new user in; the backend returns no tokens for registration.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) error {
	payload, err := s.post(ctx, "/Auth/Register", req)
	if err != nil {
		return err
	}
	if !payload.Success {
		return apperrors.New(http.StatusBadRequest, messageOr(payload.Message, "Registration failed"), nil)
	}
	return nil
}

// Logout clears the stored session. The backend holds no client session to
// terminate.
func (s *Service) Logout(ctx context.Context) error {
	s.logger.Info("logged out")
	return s.tokens.Clear(ctx)
}

// Refresh renews the session eagerly, outside the 401-triggered path.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	token, err := RefreshTokens(ctx, s.refresh, s.baseURL, s.tokens)
	if err != nil {
		_ = s.tokens.Clear(ctx)
		return "", err
	}
	return token, nil
}

// CurrentUser returns the user from the published auth state, nil when
// unauthenticated.
func (s *Service) CurrentUser() *models.User {
	return s.tokens.State().Get().User
}

func (s *Service) IsAuthenticated() bool {
	return s.tokens.State().Get().Authenticated
}

func (s *Service) HasRole(role string) bool {
	user := s.CurrentUser()
	return user != nil && user.Role == role
}

func (s *Service) IsAdmin() bool    { return s.HasRole(models.RoleAdmin) }
func (s *Service) IsCustomer() bool { return s.HasRole(models.RoleCustomer) }

func (s *Service) post(ctx context.Context, path string, body any) (*models.Response[models.TokenPair], error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload models.Response[models.TokenPair]
	if resp.StatusCode >= http.StatusBadRequest {
		msg := ""
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			msg = payload.Message
		}
		return nil, apperrors.FromStatus(resp.StatusCode, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &payload, nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
