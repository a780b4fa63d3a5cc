package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-visits/internal/adapters/auth/jwtauth"
	"pet-clinic-visits/internal/config"
	"pet-clinic-visits/internal/ports/capabilities"
)

// executeCommand corre el root con args y captura la salida.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "migrate")
	assert.Contains(t, out, "token")
}

func TestTokenCmd_IssuesVerifiableToken(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_JWT_ISSUER", "petclinic-test")

	out, err := executeCommand("token", "--env-file", "", "--user", "vet-1", "--roles", "VET_ADMIN,OWNER_ADMIN")
	require.NoError(t, err)

	v, err := jwtauth.NewVerifier(jwtauth.Config{Secret: "test-secret", Issuer: "petclinic-test"})
	require.NoError(t, err)
	claims, err := v.Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "vet-1", claims.UserID)
	assert.Equal(t, []capabilities.Capability{capabilities.VetAdmin, capabilities.OwnerAdmin}, claims.Capabilities)
}

func TestTokenCmd_RequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := executeCommand("token", "--env-file", "")
	assert.Error(t, err)
}

func TestTokenCmd_UnknownRoles(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_JWT_SECRET", "s")

	_, err := executeCommand("token", "--env-file", "", "--roles", "GUEST")
	assert.Error(t, err)
}

func TestMigrateCmd_RequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_DSN", "")

	_, err := executeCommand("migrate", "--env-file", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestBuildVerifier_Modes(t *testing.T) {
	v, err := buildVerifier(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, v, "modo dev sin verifier")

	v, err = buildVerifier(&config.Config{Auth: config.Auth{JWTSecret: "s"}})
	require.NoError(t, err)
	assert.IsType(t, &jwtauth.Verifier{}, v)

	v, err = buildVerifier(&config.Config{Odin: config.Odin{BaseURL: "http://odin.test", APIKey: "k"}})
	require.NoError(t, err)
	assert.NotNil(t, v)
}
