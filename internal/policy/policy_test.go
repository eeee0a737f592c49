package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/catalog"
	"github.com/spectropro/spectro-backend/internal/models"
)

func TestCanAccessPublicFile(t *testing.T) {
	t.Parallel()

	f := catalog.File{ID: "open", IsProtected: false}
	assert.True(t, CanAccess(f, ""), "public files need no session")
	assert.True(t, CanAccess(f, models.RoleUser))
	assert.True(t, CanAccess(f, models.RoleResearcher))
}

func TestCanAccessProtectedWithoutRequiredRole(t *testing.T) {
	t.Parallel()

	// Protection flag alone does not block access (kept behavior).
	f := catalog.File{ID: "odd", IsProtected: true}
	assert.True(t, CanAccess(f, ""))
	assert.True(t, CanAccess(f, models.RoleUser))
}

func TestCanAccessRoleRequirement(t *testing.T) {
	t.Parallel()

	f := catalog.File{ID: "cal", IsProtected: true, RequiredRole: models.RoleResearcher}
	assert.False(t, CanAccess(f, ""))
	assert.False(t, CanAccess(f, models.RoleUser))
	assert.True(t, CanAccess(f, models.RoleResearcher))

	userOnly := catalog.File{ID: "members", IsProtected: true, RequiredRole: models.RoleUser}
	assert.True(t, CanAccess(userOnly, models.RoleUser))
	assert.True(t, CanAccess(userOnly, models.RoleResearcher), "researcher satisfies any requirement")
	assert.False(t, CanAccess(userOnly, ""))
}

func TestResearcherDominatesUser(t *testing.T) {
	t.Parallel()

	// Privilege monotonicity over the entire shipped catalog.
	for _, f := range catalog.All() {
		if CanAccess(f, models.RoleUser) {
			assert.True(t, CanAccess(f, models.RoleResearcher), "file %s accessible to user but not researcher", f.ID)
		}
	}
}

func TestCanAccessAdminArea(t *testing.T) {
	t.Parallel()

	approved := adminlist.New([]string{"EC/2020/012", "EC/2020/056"})

	cases := []struct {
		name string
		user *models.User
		want bool
	}{
		{"nil user", nil, false},
		{"plain user with approved id", &models.User{Role: models.RoleUser, StudentID: "EC/2020/012"}, false},
		{"researcher on allow-list", &models.User{Role: models.RoleResearcher, StudentID: "EC/2020/012"}, true},
		{"researcher off allow-list", &models.User{Role: models.RoleResearcher, StudentID: "EC/2099/999"}, false},
		{"researcher without student id", &models.User{Role: models.RoleResearcher}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAccessAdminArea(tc.user, approved))
		})
	}
}

func TestCanAccessAdminAreaIgnoresCachedFlag(t *testing.T) {
	t.Parallel()

	approved := adminlist.New([]string{"EC/2020/012"})

	// A stale cached flag must not grant access.
	u := &models.User{Role: models.RoleResearcher, StudentID: "EC/2099/999", IsApprovedAdmin: true}
	assert.False(t, CanAccessAdminArea(u, approved))
}
