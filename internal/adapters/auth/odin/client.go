package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-clinic-visits/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("odin client not configured")
	ErrUnauthorized  = errors.New("odin unauthorized")
	ErrUpstream      = errors.New("odin upstream error")
)

const verifyPath = "/v1/tokens/verify"

type Config struct {
	BaseURL string
	APIKey  string

	// Header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client habla con el IAM Odin.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(cfg.BaseURL, timeout,
		httpclient.WithHeader(header, strings.TrimSpace(cfg.APIKey)),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// Identity es lo que Odin devuelve para un token válido.
type Identity struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"roles"`
}

// VerifyToken pide a Odin que valide el token y devuelve el usuario con sus roles.
func (c *Client) VerifyToken(ctx context.Context, token string) (Identity, error) {
	if c == nil || c.http == nil {
		return Identity{}, ErrNotConfigured
	}

	var out Identity
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath,
		http.Header{"Authorization": []string{"Bearer " + token}},
		map[string]string{"token": token},
		&out,
	)
	switch {
	case err == nil:
		return out, nil
	case httpclient.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden):
		return Identity{}, ErrUnauthorized
	default:
		return Identity{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}
