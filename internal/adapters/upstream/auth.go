package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront-gateway-service/internal/ports"
)

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		UserID      string `json:"user_id"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
}

func (r sessionResponse) toSession() ports.Session {
	s := ports.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		UserID:       r.User.UserID,
		DisplayName:  r.User.DisplayName,
	}

	if r.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	} else if exp, err := TokenExpiry(r.AccessToken); err == nil {
		s.ExpiresAt = exp
	}

	return s
}

// Login exchanges phone/password credentials for a session.
func (c *Client) Login(ctx context.Context, phone, password string) (ports.Session, error) {
	body := map[string]string{"phone": phone, "password": password}

	var resp sessionResponse
	if err := c.postJSON(ctx, "/auth/login", body, &resp); err != nil {
		return ports.Session{}, fmt.Errorf("login: %w", err)
	}
	return resp.toSession(), nil
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, phone, password, displayName string) (ports.Session, error) {
	body := map[string]string{
		"phone":        phone,
		"password":     password,
		"display_name": displayName,
	}

	var resp sessionResponse
	if err := c.postJSON(ctx, "/auth/register", body, &resp); err != nil {
		return ports.Session{}, fmt.Errorf("register: %w", err)
	}
	return resp.toSession(), nil
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (ports.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var resp sessionResponse
	if err := c.postJSON(ctx, "/auth/refresh", body, &resp); err != nil {
		return ports.Session{}, fmt.Errorf("refresh: %w", err)
	}
	return resp.toSession(), nil
}

// TokenExpiry reads the exp claim of a bearer token without verifying
// its signature. The upstream is the authority on token validity; the
// gateway only inspects expiry to reject stale tokens early and to
// decide when a session needs refreshing.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// TokenSubject reads the sub claim of a bearer token without verifying
// its signature. Used to scope gateway-local data (addresses, carts) to
// the caller the upstream authenticated.
func TokenSubject(token string) (string, error) {
	parser := jwt.NewParser()

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("token has no sub claim")
	}
	return claims.Subject, nil
}
