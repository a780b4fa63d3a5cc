package odin

import (
	"context"
	"fmt"
	"strings"

	"pet-clinic-visits/internal/ports/auth"
	"pet-clinic-visits/internal/ports/capabilities"
)

// Verifier implementa auth.AuthVerifier delegando en Odin.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	res, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}

	uid := strings.TrimSpace(res.UserID)
	if uid == "" {
		return auth.Claims{}, fmt.Errorf("%w: odin response missing user_id", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID:       uid,
		Email:        strings.TrimSpace(res.Email),
		TenantID:     strings.TrimSpace(res.TenantID),
		Capabilities: capabilities.ParseList(strings.Join(res.Roles, ",")),
	}, nil
}
