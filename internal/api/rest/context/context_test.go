package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_SetAndGetToken(t *testing.T) {
	m := NewManager()
	ctx := m.SetTokenToContext(stdctx.Background(), "tok-123")

	got, ok := m.GetTokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", got)
}

func TestManager_GetToken_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetTokenFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_SetEmptyToken(t *testing.T) {
	m := NewManager()
	parent := stdctx.Background()
	ctx := m.SetTokenToContext(parent, "")

	assert.Equal(t, parent, ctx)
	_, ok := m.GetTokenFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_InnerTokenWins(t *testing.T) {
	m := NewManager()
	ctx := m.SetTokenToContext(stdctx.Background(), "old")
	ctx = m.SetTokenToContext(ctx, "new")

	got, ok := m.GetTokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
