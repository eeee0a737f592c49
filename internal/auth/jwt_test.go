package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectropro/spectro-backend/internal/models"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", "spectro-test", time.Hour, 24*time.Hour)
}

func TestGeneratePairAndParse(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	u := models.User{ID: "u-1", Role: models.RoleResearcher, StudentID: "EC/2020/012"}

	access, refresh, exp, err := tm.GeneratePair(u)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "researcher", claims.Role)
	assert.Equal(t, "EC/2020/012", claims.StudentID)

	refClaims, err := tm.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u-1", refClaims.UserID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	access, refresh, _, err := tm.GeneratePair(models.User{ID: "u-2", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = tm.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	access, _, _, err := tm.GeneratePair(models.User{ID: "u-3", Role: models.RoleUser})
	require.NoError(t, err)

	other := NewTokenManager("different", "different", "spectro-test", time.Hour, time.Hour)
	_, err = other.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("access-secret", "refresh-secret", "spectro-test", -time.Minute, -time.Minute)
	access, _, _, err := tm.GeneratePair(models.User{ID: "u-4", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = tm.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	_, err := tm.ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
