package api

import (
	"context"
	"fmt"
)

type AuthService struct {
	client *Client
}

func (s *AuthService) Register(ctx context.Context, form RegisterForm) (User, error) {
	var out User
	if err := s.client.post(ctx, "/auth/register", form, &out); err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

// Login exchanges credentials for a bearer token. It goes out without an
// Authorization header even when a stale token is stored.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (Token, error) {
	var out Token
	if err := s.client.post(ctx, "/auth/login", creds, &out); err != nil {
		return Token{}, fmt.Errorf("login: %w", err)
	}
	return out, nil
}

// Me validates the current token and returns the user behind it.
func (s *AuthService) Me(ctx context.Context) (User, error) {
	var out User
	if err := s.client.get(ctx, "/auth/me", &out); err != nil {
		return User{}, fmt.Errorf("me: %w", err)
	}
	return out, nil
}

// Logout revokes the current token server-side.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) CompleteOnboarding(ctx context.Context) (User, error) {
	var out User
	body := map[string]bool{"onboarding_done": true}
	if err := s.client.patch(ctx, "/auth/me/onboarding", body, &out); err != nil {
		return User{}, fmt.Errorf("complete onboarding: %w", err)
	}
	return out, nil
}

func (s *AuthService) UpdatePreferences(ctx context.Context, prefs Preferences) (User, error) {
	var out User
	if err := s.client.patch(ctx, "/auth/me/preferences", prefs, &out); err != nil {
		return User{}, fmt.Errorf("update preferences: %w", err)
	}
	return out, nil
}
