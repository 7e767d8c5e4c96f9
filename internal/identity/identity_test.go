package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderLoginLogout(t *testing.T) {
	ctx := context.Background()
	p := NewFileProvider(filepath.Join(t.TempDir(), "dir", "session.yaml"))

	_, ok, err := p.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Login(" alice "))
	id, ok, err := p.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", id)

	require.NoError(t, p.Logout())
	require.NoError(t, p.Logout())
	_, ok, err = p.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginRejectsBadIDs(t *testing.T) {
	p := NewFileProvider(filepath.Join(t.TempDir(), "session.yaml"))
	for _, bad := range []string{"", "has space", "../etc", "-dash"} {
		assert.Error(t, p.Login(bad), bad)
	}
}

func TestChainFallsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("user: [unterminated"), 0o600))

	id, ok, err := Chain{NewFileProvider(filepath.Join(dir, "none.yaml")), Static("fallback")}.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fallback", id)

	_, ok, err = Chain{NewFileProvider(broken), Static("")}.CurrentUserID(ctx)
	assert.Error(t, err)
	assert.False(t, ok)

	id, ok, err = Chain{NewFileProvider(broken), Static("bob")}.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bob", id)
}
