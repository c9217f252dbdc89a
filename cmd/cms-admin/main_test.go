package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", "testdata-missing.env"))
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	t.Setenv("CMS_JWT_SECRET", "admin-test-secret")

	out, err := run(t, "token", "issue", "--username", "ana", "--role", "admin", "--json")
	require.NoError(t, err)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Token)

	token, err := api.NewTokenAuth("admin-test-secret").Decode(resp.Token)
	require.NoError(t, err)
	role, ok := token.Get(api.ClaimRole)
	require.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestTokenIssueExpiry(t *testing.T) {
	t.Setenv("CMS_JWT_SECRET", "admin-test-secret")

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantExpiry bool
	}{
		{name: "default ttl", args: nil, wantExpiry: true},
		{name: "zero ttl rejected", args: []string{"--ttl=0s"}, wantErr: true},
		{name: "negative ttl rejected", args: []string{"--ttl=-1m"}, wantErr: true},
		{name: "no expiry", args: []string{"--no-expiry"}, wantExpiry: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"token", "issue"}, tt.args...)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			token, err := api.NewTokenAuth("admin-test-secret").Decode(strings.TrimSpace(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpiry, !token.Expiration().IsZero())
		})
	}
}

func TestTokenIssueRequiresSecret(t *testing.T) {
	t.Setenv("CMS_JWT_SECRET", "")

	_, err := run(t, "token", "issue")
	assert.Error(t, err)
}

func TestTypesListMemory(t *testing.T) {
	t.Setenv("CMS_DATABASE_URL", "memory")

	out, err := run(t, "types", "list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SLUG"))
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("CMS_DATABASE_URL", "memory")

	_, err := run(t, "migrate", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Postgres")
}

func TestVersionsDiffArgs(t *testing.T) {
	_, err := run(t, "versions", "diff", "not-a-uuid", "1", "2")
	assert.Error(t, err)
}
