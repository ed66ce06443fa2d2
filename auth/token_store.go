package auth

import (
	"context"
	"encoding/json"
	"errors"

	"storefront-client/models"
	"storefront-client/state"
	"storefront-client/storage"
)

// Storage keys shared with every client version; external tooling reads the
// same layout. Tokens are raw strings, the user profile is JSON.
const (
	accessTokenKey  = "ecommerce_token"
	refreshTokenKey = "ecommerce_refresh_token"
	userKey         = "ecommerce_user"
)

// TokenStore owns the persisted token pair and cached user profile, and
// publishes the authentication state derived from them.
type TokenStore struct {
	store storage.Store
	state *state.Value[models.AuthState]
}

func NewTokenStore(store storage.Store) *TokenStore {
	return &TokenStore{
		store: store,
		state: state.NewValue(models.AuthState{}),
	}
}

// State exposes the observable authentication snapshot.
func (ts *TokenStore) State() *state.Value[models.AuthState] {
	return ts.state
}

// AccessToken returns the stored access token, or "" when none is stored.
// Absence is not an error: it just means an unauthenticated request.
func (ts *TokenStore) AccessToken(ctx context.Context) string {
	return ts.readString(ctx, accessTokenKey)
}

// RefreshToken returns the stored refresh token, or "" when none is stored.
func (ts *TokenStore) RefreshToken(ctx context.Context) string {
	return ts.readString(ctx, refreshTokenKey)
}

// User returns the cached profile. Malformed stored records read as nil.
func (ts *TokenStore) User(ctx context.Context) *models.User {
	data, err := ts.store.Get(ctx, userKey)
	if err != nil {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// SaveTokens persists a refreshed token pair. An empty rotated refresh token
// keeps the existing one. The published state keeps the cached user.
func (ts *TokenStore) SaveTokens(ctx context.Context, access, refresh string) error {
	if err := ts.store.Set(ctx, accessTokenKey, []byte(access)); err != nil {
		return err
	}
	if refresh != "" {
		if err := ts.store.Set(ctx, refreshTokenKey, []byte(refresh)); err != nil {
			return err
		}
	}
	ts.state.Set(models.AuthState{
		Authenticated: true,
		User:          ts.User(ctx),
		AccessToken:   access,
	})
	return nil
}

// SaveSession persists a full login result: token pair plus user profile.
func (ts *TokenStore) SaveSession(ctx context.Context, pair models.TokenPair, user *models.User) error {
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := ts.store.Set(ctx, userKey, data); err != nil {
			return err
		}
	}
	return ts.SaveTokens(ctx, pair.AccessToken, pair.RefreshToken)
}

// Clear removes all stored auth state and publishes the unauthenticated
// snapshot. It is safe to call repeatedly.
func (ts *TokenStore) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{accessTokenKey, userKey, refreshTokenKey} {
		if err := ts.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	ts.state.Set(models.AuthState{})
	return errors.Join(errs...)
}

// Restore rebuilds the in-memory auth state from storage at startup. An
// expired or unparsable stored token clears the session instead.
func (ts *TokenStore) Restore(ctx context.Context) {
	token := ts.AccessToken(ctx)
	user := ts.User(ctx)
	if token == "" || user == nil || TokenExpired(token) {
		_ = ts.Clear(ctx)
		return
	}
	ts.state.Set(models.AuthState{
		Authenticated: true,
		User:          user,
		AccessToken:   token,
	})
}

func (ts *TokenStore) readString(ctx context.Context, key string) string {
	data, err := ts.store.Get(ctx, key)
	if err != nil {
		return ""
	}
	return string(data)
}
