package odin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-visits/internal/ports/auth"
	"pet-clinic-visits/internal/ports/capabilities"
)

func newOdin(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_MapsRoles(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id": " u-1 ",
			"email":   "a@b.test",
			"roles":   []string{"ROLE_VET_ADMIN", "ROLE_GUEST"},
		})
	})

	claims, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, []capabilities.Capability{capabilities.VetAdmin}, claims.Capabilities)
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_UpstreamFailure(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestVerify_MissingUser(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email":"x@y.test"}`))
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://odin.test"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	var v *Verifier
	_, err = v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
