// Package gotrue verifica tokens de sesión contra el proveedor de
// identidad externo (endpoint estilo GoTrue: GET /auth/v1/user).
package gotrue

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-market/internal/platform/httpclient"
	"pet-adoption-market/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
)

// Config del cliente. BaseURL y APIKey vienen de la config del servicio.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName  string `json:"full_name"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

// GetUser resuelve el usuario dueño del token de sesión.
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var ur userResponse
	err := c.http.DoJSON(ctx, "GET", "/auth/v1/user", map[string]string{
		"Authorization": "Bearer " + token,
		"apikey":        c.apiKey,
	}, nil, &ur)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && (httpErr.StatusCode == 401 || httpErr.StatusCode == 403) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, err
	}

	fullName := ur.UserMetadata.FullName
	if fullName == "" {
		fullName = ur.UserMetadata.Name
	}

	return auth.Claims{
		UserID:    strings.TrimSpace(ur.ID),
		Email:     strings.TrimSpace(ur.Email),
		FullName:  strings.TrimSpace(fullName),
		AvatarURL: strings.TrimSpace(ur.UserMetadata.AvatarURL),
	}, nil
}
